package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/term"
)

func validateLogOptions(level, format string) error {
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	switch format {
	case "text", "json", "auto":
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid log-format %q: must be 'text', 'json' or 'auto'", format)}
	}
	return nil
}

// newLogger builds a logger writing to w. "auto" picks text on a terminal
// and JSON otherwise.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	if formatStr == "auto" {
		formatStr = "json"
		if isTerminal(w) {
			formatStr = "text"
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
