package main

import (
	"io"
	"log/slog"

	"binding-generator/internal/config"
)

// newLogger builds the run logger. The config sets the base level and
// format; each -v lowers the level by one step.
func newLogger(w io.Writer, cfg config.Logging, verbose int) *slog.Logger {
	level := slog.LevelInfo

	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	level -= slog.Level(4 * verbose)

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
