// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Builds the default logger with level and format from flags and environment.

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger writing to w.
// IGV_LOG_LEVEL: debug, info, warn, error (default: warn, or debug when debug is set)
// IGV_LOG_FORMAT: text, json (default: text)
func Init(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if env := os.Getenv("IGV_LOG_LEVEL"); env != "" {
		level = ParseLevel(env)
	}
	if debug {
		level = slog.LevelDebug
	}

	l := New(w, level, os.Getenv("IGV_LOG_FORMAT"))
	slog.SetDefault(l)
	return l
}

// New returns a logger with a text or JSON handler on w
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
