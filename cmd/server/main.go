// Package main runs the wordflip server: vocabulary flashcard and quiz
// sessions for Korean, Thai and Japanese over a JSON API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	if *migrateCmd != "" {
		if err := handleMigrations(ctx, cfg, *migrateCmd, l); err != nil {
			l.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and installs the structured logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider)
	l.Debug("optional components",
		"database_url_present", cfg.Database.URL != "",
		"tts_api_key_present", cfg.TTS.APIKey != "",
		"deck_data_dir", cfg.Deck.DataDir)

	return cfg, l, nil
}
