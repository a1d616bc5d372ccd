// Package logging provides the slog.Logger factory used by every docstatus app.
//
// Log format is controlled by the LOG_FORMAT environment variable:
//
//	LOG_FORMAT=json    structured JSON, suitable for log aggregators (default)
//	LOG_FORMAT=text    human-readable key=value pairs, for local development
//
// Log level is controlled by LOG_LEVEL (debug, info, warn, error; default info).
// Every record carries an "app" attribute naming the binary that wrote it.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger for app writing to stdout, configured from environment variables.
func New(app string) *slog.Logger {
	return NewWithWriter(os.Stdout, app)
}

// NewWithWriter is New with an explicit destination. The CLI logs to stderr
// so that stdout carries only the report.
func NewWithWriter(w io.Writer, app string) *slog.Logger {
	return build(w, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL")).With("app", app)
}

func build(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text", "console":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
