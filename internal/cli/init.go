// Package cli provides the spendlog command tree and the initialization
// shared by every command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"spendlog/internal/app"
	"spendlog/internal/backend"
	"spendlog/internal/config"
	"spendlog/internal/log"
	"spendlog/internal/services"
	"spendlog/internal/store"
)

// SetupLogger initializes structured logging at the configured level and
// sets it as the default logger.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentCLI,
		Output:    w,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenState builds the configured substrate and returns a State over it. The
// returned result must be closed by the caller.
func OpenState(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...services.Option) (*app.State, *backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s backend: %w", bcfg.Type, err)
	}

	return app.New(store.NewAdapter(res.Substrate), opts...), res, nil
}
