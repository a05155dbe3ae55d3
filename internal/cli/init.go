// Package cli provides common initialization shared by cmd/finledger and
// cmd/adduser.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mahendrareddyduggireddy/backendproject/internal/config"
	applog "github.com/mahendrareddyduggireddy/backendproject/internal/log"
	"github.com/mahendrareddyduggireddy/backendproject/internal/storage"
)

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging from the LOG_LEVEL env var and
// installs it as the default logger.
func SetupLogger() *slog.Logger {
	return applog.Setup(applog.LevelFromEnv(os.Getenv("LOG_LEVEL")))
}

// LoadAndValidateConfig loads configuration or exits the process on
// validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite opens the store or exits the process on failure.
func InitSQLite(logger *slog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
