package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/enrich"
	"github.com/phrazzld/wordflip/internal/platform/googletts"
	"github.com/phrazzld/wordflip/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy(t *testing.T) {
	t.Parallel()

	p := retryPolicy(config.LLMConfig{MaxAttempts: 5, BaseDelayMS: 1000, Multiplier: 2})
	assert.Equal(t, enrich.DefaultRetryPolicy(), p)
	assert.Equal(t,
		[]time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second},
		p.Delays())
}

func TestNewAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.LLMConfig
		check   func(t *testing.T, a enrich.Analyzer)
		wantErr error
	}{
		{
			name: "none",
			cfg:  config.LLMConfig{Provider: providerNone},
			check: func(t *testing.T, a enrich.Analyzer) {
				assert.IsType(t, enrich.Disabled{}, a)
			},
		},
		{
			name: "openai wrapped in retries",
			cfg: config.LLMConfig{
				Provider:     providerOpenAI,
				OpenAIAPIKey: "sk-test",
				MaxAttempts:  3,
				BaseDelayMS:  10,
				Multiplier:   2,
			},
			check: func(t *testing.T, a enrich.Analyzer) {
				assert.IsType(t, &enrich.Retrying{}, a)
			},
		},
		{
			name:    "openai without key",
			cfg:     config.LLMConfig{Provider: providerOpenAI, MaxAttempts: 1, Multiplier: 1},
			wantErr: enrich.ErrInvalidConfig,
		},
		{
			name: "invalid retry policy",
			cfg: config.LLMConfig{
				Provider:     providerOpenAI,
				OpenAIAPIKey: "sk-test",
				MaxAttempts:  0,
				Multiplier:   2,
			},
			wantErr: enrich.ErrInvalidConfig,
		},
		{
			name:    "unknown provider",
			cfg:     config.LLMConfig{Provider: "claude"},
			wantErr: enrich.ErrInvalidConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, err := newAnalyzer(context.Background(), tc.cfg, discardLogger)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, a)
		})
	}
}

func TestNewSynthesizer(t *testing.T) {
	t.Parallel()

	t.Run("disabled without key or cache", func(t *testing.T) {
		t.Parallel()
		s, err := newSynthesizer(config.TTSConfig{}, discardLogger)
		require.NoError(t, err)
		assert.IsType(t, speech.Disabled{}, s)
	})

	t.Run("cache only client", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "tts")
		s, err := newSynthesizer(config.TTSConfig{CacheDir: dir, TimeoutSeconds: 1}, discardLogger)
		require.NoError(t, err)
		assert.IsType(t, &googletts.Client{}, s)
		assert.DirExists(t, dir)
	})
}

func TestNewDeckLoader_MissingDataDir(t *testing.T) {
	t.Parallel()

	loader, err := newDeckLoader(config.DeckConfig{
		DataDir:  filepath.Join(t.TempDir(), "missing"),
		UnitSize: 10,
	}, discardLogger)
	require.NoError(t, err)
	require.NotNil(t, loader)
}

func TestHandleMigrations(t *testing.T) {
	t.Parallel()

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		err := handleMigrations(context.Background(), &config.Config{}, "redo", discardLogger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown migration command")
	})

	t.Run("no database", func(t *testing.T) {
		t.Parallel()
		err := handleMigrations(context.Background(), &config.Config{}, "status", discardLogger)
		assert.ErrorIs(t, err, errNoDatabase)
	})
}
