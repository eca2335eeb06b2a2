package enrich

import (
	"context"
	"fmt"

	"github.com/phrazzld/wordflip/internal/domain"
)

// Request identifies the word to analyze.
type Request struct {
	Word     string
	Meaning  string
	Language domain.Language
}

// Validate checks that the request names a word, its meaning and a language.
func (r Request) Validate() error {
	if r.Word == "" || r.Meaning == "" {
		return fmt.Errorf("%w: word and meaning are required", domain.ErrValidation)
	}
	if r.Language.Code == "" {
		return fmt.Errorf("%w: language is required", domain.ErrValidation)
	}
	return nil
}

// Analyzer produces an analysis for one word. Implementations return the
// errors of this package so callers and the retry wrapper can classify
// failures.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (domain.Analysis, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, req Request) (domain.Analysis, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, req Request) (domain.Analysis, error) {
	return f(ctx, req)
}

// Disabled is the analyzer used when no provider is configured.
type Disabled struct{}

// Analyze always returns ErrDisabled.
func (Disabled) Analyze(context.Context, Request) (domain.Analysis, error) {
	return domain.Analysis{}, ErrDisabled
}
