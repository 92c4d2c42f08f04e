package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, "warn")

	log.Info("hidden")
	log.Warn("shown", slog.String("component", "test"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	logger.AssertLogField(t, buf, "component", "test")
}

func TestFromContext(t *testing.T) {
	custom := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))
	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))

	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, slog.Default(), logger.FromContext(nil))
	assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
	assert.Equal(t, custom, logger.FromContext(logger.WithLogger(context.Background(), custom)))

	assert.Equal(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Equal(t, custom,
		logger.FromContextOrDefault(logger.WithLogger(context.Background(), custom), fallback))
	assert.Equal(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}

func TestLogCaptureContext(t *testing.T) {
	ctx, buf := logger.NewLogCaptureContext(t)

	logger.FromContext(ctx).Info("captured", slog.String("trace_id", "abc"))

	logger.AssertLogContains(t, buf, "captured")
	logger.AssertLogField(t, buf, "trace_id", "abc")
}
