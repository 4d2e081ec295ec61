package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, ok := ParseLevel(tc.name)
			assert.Equal(t, tc.want, level)
			assert.Equal(t, tc.known, ok)
		})
	}
}

func TestSetup_RespectsLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &TestLogBuffer{}
	l, err := setup(buf, config.ServerConfig{LogLevel: "warn"})
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "value", entries[0]["key"])
}

func TestSetup_InstallsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &TestLogBuffer{}
	_, err := setup(buf, config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)

	slog.Debug("through default", "component", "test")
	AssertLogField(t, buf, "component", "test")
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &TestLogBuffer{}
	l, err := setup(buf, config.ServerConfig{LogLevel: "chatty"})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
}

func TestFromContext(t *testing.T) {
	buf, base := SetupTestLogger(t)

	t.Run("no logger in context returns default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("logger in context is returned", func(t *testing.T) {
		scoped := base.With("trace_id", "abc")
		ctx := WithLogger(context.Background(), scoped)

		FromContext(ctx).Info("scoped message")
		AssertLogField(t, buf, "trace_id", "abc")
	})

	t.Run("fallback used when context is empty", func(t *testing.T) {
		fallback := base.With("component", "fallback")
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil fallback resolves to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})
}
