package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", "debug", slog.LevelDebug, true},
		{"info", "info", slog.LevelInfo, true},
		{"warn upper case", "WARN", slog.LevelWarn, true},
		{"error padded", " error ", slog.LevelError, true},
		{"unknown", "verbose", slog.LevelInfo, false},
		{"empty", "", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)
	l.Info("hidden")
	l.Warn("shown", "word", "사과")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "사과", entries[0]["word"])
}

func TestNew_RedactsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)
	l.Error("store failed",
		"error", errors.New("dial postgres://wordflip:hunter22@db:5432/wordflip"))
	l.Error("lookup failed", "error", "api_key=abcdefghijklmnop")

	out := buf.String()
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "abcdefghijklmnop")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0]["error"], "[REDACTED_CREDENTIAL]")
	assert.Contains(t, entries[1]["error"], "[REDACTED_KEY]")
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("valid level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := setup(config.ServerConfig{LogLevel: "debug"}, &buf)
		require.NoError(t, err)
		require.NotNil(t, l)

		slog.Debug("through default")
		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "through default", entries[0]["msg"])
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := setup(config.ServerConfig{LogLevel: "chatty"}, &buf)
		require.NoError(t, err)

		l.Debug("hidden")
		entries := decodeLines(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "invalid log level configured, using default level", entries[0]["msg"])
		assert.Equal(t, "chatty", entries[0]["configured_level"])
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContextOrDefault(ctx, fallback))
	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, fallback, FromContextOrDefault(nil, fallback)) //nolint:staticcheck
	assert.Same(t, fallback, FromContextOrDefault(WithLogger(context.Background(), nil), fallback))
}
