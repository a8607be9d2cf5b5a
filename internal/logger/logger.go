// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// L is the package logger configured by Init. Before Init it is slog.Default().
var L = slog.Default()

// Init builds a slog handler from the configured level ("debug", "info", "warn",
// "error") and format ("text" or "json"), installs it as the process default,
// and stores it in L.
func Init(level, format string) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}
