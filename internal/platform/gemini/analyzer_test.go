package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func request(t *testing.T) enrich.Request {
	t.Helper()
	lang, err := domain.LookupLanguage("ja")
	require.NoError(t, err)
	return enrich.Request{Word: "水", Meaning: "water", Language: lang}
}

func TestAnalyzeSuccess(t *testing.T) {
	t.Parallel()

	models := &fakeModels{resp: textResponse(`{"root": "water radical", "mnemonic": "m", "scenario": "s", "scenario_cn": "c"}`)}
	a, err := newAnalyzer(discardLogger, models, "")
	require.NoError(t, err)

	got, err := a.Analyze(context.Background(), request(t))
	require.NoError(t, err)

	assert.Equal(t, "water radical", got.Root)
	assert.Equal(t, DefaultModel, models.gotModel)
	assert.Contains(t, models.gotPrompt, "水")
	require.NotNil(t, models.gotConfig)
	assert.Equal(t, "application/json", models.gotConfig.ResponseMIMEType)
	require.NotNil(t, models.gotConfig.SystemInstruction)
	assert.Contains(t, models.gotConfig.SystemInstruction.Parts[0].Text, "Japanese")
}

func TestAnalyzeErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		models  *fakeModels
		wantErr error
	}{
		{
			name:    "api error is transient",
			models:  &fakeModels{err: errors.New("503 service unavailable")},
			wantErr: enrich.ErrTransientFailure,
		},
		{
			name:    "cancellation passes through",
			models:  &fakeModels{err: context.Canceled},
			wantErr: context.Canceled,
		},
		{
			name:    "nil response",
			models:  &fakeModels{},
			wantErr: enrich.ErrInvalidResponse,
		},
		{
			name:    "no candidates",
			models:  &fakeModels{resp: &genai.GenerateContentResponse{}},
			wantErr: enrich.ErrInvalidResponse,
		},
		{
			name: "safety finish",
			models: &fakeModels{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantErr: enrich.ErrContentBlocked,
		},
		{
			name:    "prose reply",
			models:  &fakeModels{resp: textResponse("I cannot answer in JSON today.")},
			wantErr: enrich.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, err := newAnalyzer(discardLogger, tc.models, "gemini-test")
			require.NoError(t, err)

			_, err = a.Analyze(context.Background(), request(t))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAnalyzeRejectsIncompleteRequest(t *testing.T) {
	t.Parallel()

	models := &fakeModels{resp: textResponse(`{}`)}
	a, err := newAnalyzer(discardLogger, models, "")
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), enrich.Request{Word: "水"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, models.gotModel, "no call is made for an invalid request")
}

func TestNewAnalyzerValidation(t *testing.T) {
	t.Parallel()

	_, err := newAnalyzer(discardLogger, nil, "")
	assert.ErrorIs(t, err, enrich.ErrInvalidConfig)
}
