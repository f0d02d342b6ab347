package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ciEnvVars are copied onto every record when set.
var ciEnvVars = map[string]string{
	"GITHUB_RUN_ID":     "ci_run_id",
	"GITHUB_SHA":        "ci_commit",
	"GITHUB_REF_NAME":   "ci_branch",
	"GITHUB_JOB":        "ci_job",
	"GITHUB_REPOSITORY": "ci_repository",
}

// IsCIEnvironment reports whether the process runs under a CI system.
func IsCIEnvironment() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}

// CIHandler is a slog.Handler that adds CI run metadata to every record.
type CIHandler struct {
	handler slog.Handler
}

// NewCIHandler wraps a JSON handler writing to out.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	handlerOpts := &slog.HandlerOptions{}
	if opts != nil {
		copied := *opts
		handlerOpts = &copied
	}

	attrs := make([]slog.Attr, 0, len(ciEnvVars))
	for env, key := range ciEnvVars {
		if v := os.Getenv(env); v != "" {
			attrs = append(attrs, slog.String(key, v))
		}
	}

	return &CIHandler{
		handler: slog.NewJSONHandler(out, handlerOpts).WithAttrs(attrs),
	}
}

// Enabled implements slog.Handler.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements slog.Handler.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name)}
}

// Handle implements slog.Handler.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.handler.Handle(ctx, record)
}
