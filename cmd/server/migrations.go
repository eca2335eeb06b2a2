package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/platform/postgres"
)

// handleMigrations runs a single goose command against the configured
// database.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	switch command {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus:
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}
	if cfg.Database.URL == "" {
		return errNoDatabase
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, dbPingTimeout)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	logger.Info("executing migrations", "command", command)
	return postgres.Migrate(ctx, db, command, logger)
}
