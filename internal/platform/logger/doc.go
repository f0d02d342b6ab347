// Package logger provides structured logging for the application.
//
// It builds on the standard library log/slog package: Setup configures a JSON
// logger at the configured level, and the context helpers carry a request
// scoped logger (with trace and user attributes) through the call stack.
package logger
