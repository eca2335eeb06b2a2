package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/deck"
	"github.com/phrazzld/wordflip/internal/enrich"
	"github.com/phrazzld/wordflip/internal/platform/furigana"
	"github.com/phrazzld/wordflip/internal/platform/gemini"
	"github.com/phrazzld/wordflip/internal/platform/googletts"
	"github.com/phrazzld/wordflip/internal/platform/openai"
	"github.com/phrazzld/wordflip/internal/speech"
)

// Provider names accepted by llm.provider.
const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
	providerNone   = "none"
)

// retryPolicy converts the LLM retry settings.
func retryPolicy(cfg config.LLMConfig) enrich.RetryPolicy {
	return enrich.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   time.Duration(cfg.BaseDelayMS) * time.Millisecond,
		Multiplier:  cfg.Multiplier,
	}
}

// newAnalyzer builds the configured enrichment provider wrapped in the
// retry policy.
func newAnalyzer(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (enrich.Analyzer, error) {
	var (
		base enrich.Analyzer
		err  error
	)
	switch cfg.Provider {
	case providerGemini:
		base, err = gemini.NewAnalyzer(ctx, logger, cfg)
	case providerOpenAI:
		base, err = openai.NewAnalyzer(logger, cfg)
	case providerNone, "":
		logger.Info("word analysis disabled")
		return enrich.Disabled{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", enrich.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s analyzer: %w", cfg.Provider, err)
	}

	retrying, err := enrich.NewRetrying(base, retryPolicy(cfg), logger)
	if err != nil {
		return nil, err
	}
	logger.Info("word analysis enabled", "provider", cfg.Provider, "max_attempts", cfg.MaxAttempts)
	return retrying, nil
}

// newSynthesizer returns the Google TTS client when an API key or a cache
// directory is configured, and speech.Disabled otherwise.
func newSynthesizer(cfg config.TTSConfig, logger *slog.Logger) (speech.Synthesizer, error) {
	if cfg.APIKey == "" && cfg.CacheDir == "" {
		logger.Info("speech synthesis disabled")
		return speech.Disabled{}, nil
	}

	client, err := googletts.NewClient(googletts.Config{
		APIKey:   cfg.APIKey,
		CacheDir: cfg.CacheDir,
		Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech synthesis: %w", err)
	}
	logger.Info("speech synthesis enabled", "network", cfg.APIKey != "", "cache_dir", cfg.CacheDir)
	return client, nil
}

// newDeckLoader reads bundled decks from the data directory. Japanese
// entries get kagome readings when furigana is enabled.
func newDeckLoader(cfg config.DeckConfig, logger *slog.Logger) (*deck.Loader, error) {
	opts := []deck.Option{deck.WithUnitSize(cfg.UnitSize)}

	if cfg.Furigana {
		annotator, err := furigana.NewAnnotator()
		if err != nil {
			return nil, fmt.Errorf("failed to load furigana dictionary: %w", err)
		}
		opts = append(opts, deck.WithAnnotator(annotator, "ja"))
	}

	if _, err := os.Stat(cfg.DataDir); err != nil {
		logger.Warn("deck data directory unavailable, falling back to demo decks",
			"data_dir", cfg.DataDir, "error", err)
	}
	return deck.NewLoader(os.DirFS(cfg.DataDir), logger, opts...), nil
}
