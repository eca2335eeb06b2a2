package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/wordflip/internal/speech"
)

// SynthesizeCall records one Synthesize invocation.
type SynthesizeCall struct {
	Text         string
	LanguageCode string
}

// MockSynthesizer implements speech.Synthesizer for testing.
type MockSynthesizer struct {
	SynthesizeFn func(ctx context.Context, text, languageCode string) (speech.Audio, error)

	// Defaults used when SynthesizeFn is nil.
	Audio speech.Audio
	Err   error

	mu    sync.Mutex
	calls []SynthesizeCall
}

var _ speech.Synthesizer = (*MockSynthesizer)(nil)

// Synthesize implements speech.Synthesizer.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, languageCode string) (speech.Audio, error) {
	m.mu.Lock()
	m.calls = append(m.calls, SynthesizeCall{Text: text, LanguageCode: languageCode})
	m.mu.Unlock()

	if m.SynthesizeFn != nil {
		return m.SynthesizeFn(ctx, text, languageCode)
	}
	return m.Audio, m.Err
}

// Calls returns the calls received so far.
func (m *MockSynthesizer) Calls() []SynthesizeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SynthesizeCall(nil), m.calls...)
}
