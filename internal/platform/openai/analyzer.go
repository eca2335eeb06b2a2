// Package openai provides an enrich.Analyzer backed by the OpenAI chat
// completions API or any server that speaks the same protocol.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/enrich"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = openai.GPT4oMini

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analyzer implements enrich.Analyzer using chat completions in JSON mode.
type Analyzer struct {
	logger  *slog.Logger
	client  chatCompleter
	model   string
	prompts *enrich.PromptBuilder
}

// NewAnalyzer creates an OpenAI-backed analyzer from the LLM configuration.
// A non-empty OpenAIBaseURL points the client at a compatible server.
func NewAnalyzer(logger *slog.Logger, cfg config.LLMConfig) (*Analyzer, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", enrich.ErrInvalidConfig)
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return newAnalyzer(logger, openai.NewClientWithConfig(clientCfg), cfg.ModelName)
}

func newAnalyzer(logger *slog.Logger, client chatCompleter, model string) (*Analyzer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client cannot be nil", enrich.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = DefaultModel
	}

	prompts, err := enrich.NewPromptBuilder()
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		logger:  logger.With(slog.String("component", "openai_analyzer")),
		client:  client,
		model:   model,
		prompts: prompts,
	}, nil
}

// Analyze asks the chat model for an analysis of req.
func (a *Analyzer) Analyze(ctx context.Context, req enrich.Request) (domain.Analysis, error) {
	prompt, err := a.prompts.Build(req)
	if err != nil {
		return domain.Analysis{}, err
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.Analysis{}, classify(err)
	}

	if len(resp.Choices) == 0 {
		return domain.Analysis{}, fmt.Errorf("%w: no choices in response", enrich.ErrInvalidResponse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return domain.Analysis{}, fmt.Errorf("%w: content filtered", enrich.ErrContentBlocked)
	}

	analysis, err := enrich.ParseResponse(choice.Message.Content)
	if err != nil {
		a.logger.WarnContext(ctx, "chat model returned an unusable reply",
			slog.String("model", a.model),
			slog.Any("error", err))
		return domain.Analysis{}, err
	}
	return analysis, nil
}

// classify maps client errors onto the enrich error set. Rate limits, server
// errors and transport failures are transient; other API errors are not.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == 0 || status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: openai call failed: %v", enrich.ErrTransientFailure, err)
	}
	return fmt.Errorf("%w: openai call rejected (status %d): %v", enrich.ErrEnrichmentFailed, status, err)
}
