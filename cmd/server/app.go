package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/service"
	"github.com/phrazzld/wordflip/internal/service/auth"
	"github.com/phrazzld/wordflip/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when sessions live in memory.
	db       *sql.DB
	sessions store.SessionStore

	tokens       auth.TokenService
	studyService service.StudyService
}

// newApplication wires every component from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("session token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	loader, err := newDeckLoader(cfg.Deck, logger)
	if err != nil {
		return nil, err
	}

	analyzer, err := newAnalyzer(ctx, cfg.LLM, logger.With("component", "analyzer"))
	if err != nil {
		return nil, err
	}

	synthesizer, err := newSynthesizer(cfg.TTS, logger)
	if err != nil {
		return nil, err
	}

	app.sessions, app.db, err = setupSessionStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app.studyService, err = service.NewStudyService(app.sessions, loader, analyzer, synthesizer, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go app.sweepIdleSessions(ctx)

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
