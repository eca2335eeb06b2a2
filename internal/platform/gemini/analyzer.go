package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/wordflip/internal/config"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/enrich"
	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the part of the genai client the analyzer uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Analyzer implements enrich.Analyzer using Gemini.
type Analyzer struct {
	logger  *slog.Logger
	models  contentGenerator
	model   string
	prompts *enrich.PromptBuilder
}

// NewAnalyzer creates a Gemini-backed analyzer from the LLM configuration.
func NewAnalyzer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Analyzer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", enrich.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", enrich.ErrInvalidConfig, err)
	}

	return newAnalyzer(logger, client.Models, cfg.ModelName)
}

func newAnalyzer(logger *slog.Logger, models contentGenerator, model string) (*Analyzer, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: gemini client cannot be nil", enrich.ErrInvalidConfig)
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
		logger:  logger.With(slog.String("component", "gemini_analyzer")),
		models:  models,
		model:   model,
		prompts: prompts,
	}, nil
}

// Analyze asks Gemini for an analysis of req.
func (a *Analyzer) Analyze(ctx context.Context, req enrich.Request) (domain.Analysis, error) {
	prompt, err := a.prompts.Build(req)
	if err != nil {
		return domain.Analysis{}, err
	}

	a.logger.DebugContext(ctx, "calling Gemini",
		slog.String("model", a.model),
		slog.String("language", req.Language.Code),
		slog.Int("prompt_length", len(prompt.User)))

	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(prompt.User), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Analysis{}, err
		}
		return domain.Analysis{}, fmt.Errorf("%w: gemini call failed: %v", enrich.ErrTransientFailure, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return domain.Analysis{}, err
	}

	analysis, err := enrich.ParseResponse(text)
	if err != nil {
		a.logger.WarnContext(ctx, "Gemini returned an unusable reply",
			slog.Int("response_length", len(text)),
			slog.Any("error", err))
		return domain.Analysis{}, err
	}
	return analysis, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", enrich.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", enrich.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", enrich.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", enrich.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", enrich.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
