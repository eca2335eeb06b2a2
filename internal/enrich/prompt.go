package enrich

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/wordflip/internal/domain"
	"gopkg.in/yaml.v2"
)

//go:embed prompts/analysis.yaml
var analysisYAML []byte

type promptFile struct {
	SystemPrompt string `yaml:"system_prompt"`
	UserPrompt   string `yaml:"user_prompt"`
}

type promptData struct {
	Persona      string
	LanguageName string
	Word         string
	Meaning      string
}

// Prompt is a rendered system/user prompt pair.
type Prompt struct {
	System string
	User   string
}

// PromptBuilder renders analysis prompts from the embedded definitions.
type PromptBuilder struct {
	system *template.Template
	user   *template.Template
}

// NewPromptBuilder parses the embedded prompt definitions.
func NewPromptBuilder() (*PromptBuilder, error) {
	return newPromptBuilder(analysisYAML)
}

func newPromptBuilder(data []byte) (*PromptBuilder, error) {
	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: parsing prompt yaml: %v", ErrInvalidConfig, err)
	}
	if pf.SystemPrompt == "" || pf.UserPrompt == "" {
		return nil, fmt.Errorf("%w: prompt yaml needs system_prompt and user_prompt", ErrInvalidConfig)
	}

	system, err := template.New("system").Option("missingkey=error").Parse(pf.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing system prompt: %v", ErrInvalidConfig, err)
	}
	user, err := template.New("user").Option("missingkey=error").Parse(pf.UserPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing user prompt: %v", ErrInvalidConfig, err)
	}

	return &PromptBuilder{system: system, user: user}, nil
}

// Build renders the prompt for req.
func (b *PromptBuilder) Build(req Request) (Prompt, error) {
	if err := req.Validate(); err != nil {
		return Prompt{}, err
	}

	data := promptData{
		Persona:      req.Language.Persona,
		LanguageName: req.Language.Name,
		Word:         req.Word,
		Meaning:      req.Meaning,
	}

	var sys, usr bytes.Buffer
	if err := b.system.Execute(&sys, data); err != nil {
		return Prompt{}, fmt.Errorf("rendering system prompt: %w", err)
	}
	if err := b.user.Execute(&usr, data); err != nil {
		return Prompt{}, fmt.Errorf("rendering user prompt: %w", err)
	}

	return Prompt{
		System: strings.TrimSpace(sys.String()),
		User:   strings.TrimSpace(usr.String()),
	}, nil
}

// ParseResponse decodes a model reply into an Analysis. Markdown code
// fences around the JSON are tolerated. Missing keys get the placeholder;
// anything that is not a JSON object is ErrInvalidResponse.
func ParseResponse(text string) (domain.Analysis, error) {
	body := stripCodeFence(strings.TrimSpace(text))
	if body == "" {
		return domain.Analysis{}, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return domain.Analysis{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if fields == nil {
		return domain.Analysis{}, fmt.Errorf("%w: response is not a JSON object", ErrInvalidResponse)
	}

	a := domain.Analysis{
		Root:       stringField(fields, "root"),
		Mnemonic:   stringField(fields, "mnemonic"),
		Scenario:   stringField(fields, "scenario"),
		ScenarioCN: stringField(fields, "scenario_cn"),
	}
	return a.WithPlaceholders(), nil
}

// stringField reads a string value; non-string values are rendered as their
// JSON text so a model that returns e.g. a list still shows something.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
