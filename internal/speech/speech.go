// Package speech defines the pronunciation audio boundary. Audio is a
// best-effort extra: callers treat every error from a Synthesizer as
// "no audio" and carry on.
package speech

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when synthesis is not configured or reachable.
	ErrUnavailable = errors.New("speech synthesis unavailable")

	// ErrSynthesisFailed is returned when the provider rejected the request
	// or returned unusable audio.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrEmptyText is returned for blank input.
	ErrEmptyText = errors.New("text to synthesize cannot be empty")
)

// Audio is a synthesized clip.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer turns text into speech for a BCP-47 language code such as
// "ko-KR".
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) (Audio, error)
}

// Disabled is the Synthesizer used when audio is switched off.
type Disabled struct{}

// Synthesize always returns ErrUnavailable.
func (Disabled) Synthesize(context.Context, string, string) (Audio, error) {
	return Audio{}, ErrUnavailable
}
