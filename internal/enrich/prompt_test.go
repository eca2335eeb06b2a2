package enrich

import (
	"testing"

	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func korean(t *testing.T) domain.Language {
	t.Helper()
	lang, err := domain.LookupLanguage("ko")
	require.NoError(t, err)
	return lang
}

func TestPromptBuilderBuild(t *testing.T) {
	t.Parallel()

	b, err := NewPromptBuilder()
	require.NoError(t, err)

	p, err := b.Build(Request{Word: "사랑", Meaning: "love", Language: korean(t)})
	require.NoError(t, err)

	assert.Contains(t, p.System, "veteran Korean language teacher")
	assert.Contains(t, p.User, `"사랑"`)
	assert.Contains(t, p.User, "love")
	for _, key := range []string{"root", "mnemonic", "scenario", "scenario_cn"} {
		assert.Contains(t, p.User, key)
	}
}

func TestPromptBuilderRejectsIncompleteRequest(t *testing.T) {
	t.Parallel()

	b, err := NewPromptBuilder()
	require.NoError(t, err)

	_, err = b.Build(Request{Word: "사랑", Language: korean(t)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = b.Build(Request{Word: "사랑", Meaning: "love"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewPromptBuilderInvalidYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "system_prompt: [unclosed"},
		{"missing user prompt", "system_prompt: hi"},
		{"bad template", "system_prompt: '{{.Persona'\nuser_prompt: hi"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := newPromptBuilder([]byte(tc.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    domain.Analysis
		wantErr bool
	}{
		{
			name: "complete object",
			text: `{"root": "r", "mnemonic": "m", "scenario": "s", "scenario_cn": "c"}`,
			want: domain.Analysis{Root: "r", Mnemonic: "m", Scenario: "s", ScenarioCN: "c"},
		},
		{
			name: "missing keys get placeholder",
			text: `{"root": "r"}`,
			want: domain.Analysis{
				Root:       "r",
				Mnemonic:   domain.AnalysisPlaceholder,
				Scenario:   domain.AnalysisPlaceholder,
				ScenarioCN: domain.AnalysisPlaceholder,
			},
		},
		{
			name: "fenced json",
			text: "```json\n{\"root\": \"r\", \"mnemonic\": \"m\", \"scenario\": \"s\", \"scenario_cn\": \"c\"}\n```",
			want: domain.Analysis{Root: "r", Mnemonic: "m", Scenario: "s", ScenarioCN: "c"},
		},
		{
			name: "non string value kept as json text",
			text: `{"root": ["a", "b"], "mnemonic": null}`,
			want: domain.Analysis{
				Root:       `["a", "b"]`,
				Mnemonic:   domain.AnalysisPlaceholder,
				Scenario:   domain.AnalysisPlaceholder,
				ScenarioCN: domain.AnalysisPlaceholder,
			},
		},
		{name: "prose", text: "Sure! The root of this word is...", wantErr: true},
		{name: "empty", text: "  ", wantErr: true},
		{name: "array", text: `[{"root": "r"}]`, wantErr: true},
		{name: "null", text: `null`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseResponse(tc.text)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
