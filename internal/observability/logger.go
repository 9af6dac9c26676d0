package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/fars-report/internal/config"
)

// NewLogger builds the process logger from the configured level and format.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}
