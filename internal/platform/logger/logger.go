package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/redact"
)

// ParseLevel maps a configured level name to a slog.Level. The second return
// value is false when the name is not recognized, in which case info is used.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a JSON logger writing to w at the given level. Error attributes
// are redacted before they are written.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactErrors,
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup creates the application logger from cfg, writes to stdout, and
// installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.LogLevel)
	l := New(w, level)
	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	slog.SetDefault(l)
	return l, nil
}

// redactErrors scrubs credentials and paths from values logged under the
// "error" key.
func redactErrors(groups []string, a slog.Attr) slog.Attr {
	if a.Key != "error" {
		return a
	}
	switch v := a.Value.Any().(type) {
	case error:
		return slog.String(a.Key, redact.Error(v))
	case string:
		return slog.String(a.Key, redact.String(v))
	default:
		return a
	}
}
