// Package logging builds the run's slog logger: human-readable text on a
// terminal, JSON otherwise or when forced.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func New(level string, forceJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if !forceJSON && isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
