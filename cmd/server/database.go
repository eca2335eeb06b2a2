package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/platform/memory"
	"github.com/phrazzld/wordflip/internal/platform/postgres"
	"github.com/phrazzld/wordflip/internal/store"
)

const dbPingTimeout = 5 * time.Second

// errNoDatabase is returned by migration commands when no database URL is
// configured.
var errNoDatabase = errors.New("database.url is not configured")

// setupSessionStore returns the PostgreSQL store when a database URL is
// configured, applying pending migrations first, and the in-memory store
// otherwise. The returned *sql.DB is nil for the in-memory store.
func setupSessionStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (store.SessionStore, *sql.DB, error) {
	if cfg.URL == "" {
		logger.Info("no database configured, keeping sessions in memory")
		return memory.NewSessionStore(logger), nil, nil
	}

	db, err := postgres.Open(ctx, cfg.URL, dbPingTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, logger); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("database connection established")
	return postgres.NewSessionStore(db, logger), db, nil
}
