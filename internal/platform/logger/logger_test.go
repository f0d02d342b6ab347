package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range testCases {
		got, ok := ParseLevel(tc.input)
		assert.Equal(t, tc.want, got, tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
	}
}

func TestSetupWithWriter(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, &buf)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.Same(t, logger, slog.Default())
}

func TestSetupWithWriterInvalidLevel(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	_, err := SetupWithWriter(config.ServerConfig{LogLevel: "loud"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "invalid log level configured")
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	custom, buf := NewTestLogger()
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))

	reqCtx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(reqCtx))
	FromContextOrDefault(reqCtx, custom).Info("tagged")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0]["request_id"])
}

func TestCIHandlerAddsMetadata(t *testing.T) {
	t.Setenv("GITHUB_RUN_ID", "1234")

	var buf bytes.Buffer
	logger := slog.New(NewCIHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.With(slog.String("component", "test")).Debug("hello")

	assert.Contains(t, buf.String(), `"ci_run_id":"1234"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}
