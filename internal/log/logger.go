// Package log provides slog-based structured logging helpers shared by the
// server and CLI binaries.
package log

import (
	"log/slog"
	"os"
)

// Component names used across the codebase.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAuth    = "auth"
	ComponentLedger  = "ledger"
)

// Setup initializes structured logging with a text handler on stdout and
// installs it as the default logger.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LevelFromEnv maps a LOG_LEVEL value to a slog level, defaulting to info.
func LevelFromEnv(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
