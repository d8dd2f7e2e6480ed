// Package log configures the process-wide slog logger.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Level maps the verbosity flags onto a slog level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. Text output unless json is set.
func New(w io.Writer, verbose, quiet, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(verbose, quiet)}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs a stderr logger as the slog default.
func Setup(verbose, quiet, json bool) {
	slog.SetDefault(New(os.Stderr, verbose, quiet, json))
}
