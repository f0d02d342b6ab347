// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional .env file and an optional config
// file. The resulting Config is passed explicitly to every component; nothing
// in the application reads configuration from globals.
package config
