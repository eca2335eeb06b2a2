// Package googletts implements speech.Synthesizer with the Google Cloud
// Text-to-Speech REST API and a content-addressed disk cache.
package googletts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/wordflip/internal/speech"
)

// DefaultBaseURL is the public Text-to-Speech endpoint.
const DefaultBaseURL = "https://texttospeech.googleapis.com"

const contentTypeMP3 = "audio/mpeg"

// maxResponseBytes bounds the synthesize response read into memory.
const maxResponseBytes = 8 << 20

// Config configures a Client.
type Config struct {
	// APIKey enables network synthesis. Without it only cached clips are served.
	APIKey string
	// CacheDir stores synthesized clips. Empty disables the cache.
	CacheDir string
	// Timeout bounds one API call.
	Timeout time.Duration
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
}

// Client synthesizes MP3 audio and caches it on disk keyed by language and
// text.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	mu         sync.Mutex
}

// NewClient creates a Client, creating the cache directory if needed.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating tts cache dir: %w", err)
		}
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "google_tts")),
	}, nil
}

// CacheKey returns the cache file stem for a clip.
func CacheKey(text, languageCode string) string {
	h := sha256.Sum256([]byte(languageCode + ":" + text))
	return hex.EncodeToString(h[:16])
}

// Synthesize returns the cached clip or calls the API. Failed calls are not
// cached.
func (c *Client) Synthesize(ctx context.Context, text, languageCode string) (speech.Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return speech.Audio{}, speech.ErrEmptyText
	}

	path := c.cachePath(text, languageCode)
	if data, ok := c.readCache(path); ok {
		return speech.Audio{Data: data, ContentType: contentTypeMP3}, nil
	}

	if c.cfg.APIKey == "" {
		return speech.Audio{}, fmt.Errorf("%w: no API key configured", speech.ErrUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.readCache(path); ok {
		return speech.Audio{Data: data, ContentType: contentTypeMP3}, nil
	}

	data, err := c.call(ctx, text, languageCode)
	if err != nil {
		c.logger.WarnContext(ctx, "speech synthesis failed",
			slog.String("language_code", languageCode),
			slog.Any("error", err))
		return speech.Audio{}, err
	}

	if path != "" {
		if werr := os.WriteFile(path, data, 0o644); werr != nil {
			c.logger.WarnContext(ctx, "failed to cache synthesized audio", slog.Any("error", werr))
		}
	}
	return speech.Audio{Data: data, ContentType: contentTypeMP3}, nil
}

func (c *Client) cachePath(text, languageCode string) string {
	if c.cfg.CacheDir == "" {
		return ""
	}
	return filepath.Join(c.cfg.CacheDir, CacheKey(text, languageCode)+".mp3")
}

func (c *Client) readCache(path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

func (c *Client) call(ctx context.Context, text, languageCode string) ([]byte, error) {
	var body synthesizeRequest
	body.Input.Text = text
	body.Voice.LanguageCode = languageCode
	body.AudioConfig.AudioEncoding = "MP3"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/text:synthesize?key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", speech.ErrSynthesisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", speech.ErrUnavailable, redactKey(err.Error(), c.cfg.APIKey))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", speech.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", speech.ErrSynthesisFailed, resp.StatusCode)
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", speech.ErrSynthesisFailed, err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil || len(audio) == 0 {
		return nil, fmt.Errorf("%w: no audio content", speech.ErrSynthesisFailed)
	}
	return audio, nil
}

// redactKey removes the API key from transport error text, which embeds the
// request URL.
func redactKey(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, url.QueryEscape(key), "[REDACTED]")
}
