package speech_test

import (
	"context"
	"testing"

	"github.com/phrazzld/wordflip/internal/speech"
	"github.com/stretchr/testify/assert"
)

func TestDisabledSynthesize(t *testing.T) {
	t.Parallel()

	var s speech.Synthesizer = speech.Disabled{}
	audio, err := s.Synthesize(context.Background(), "안녕하세요", "ko-KR")

	assert.ErrorIs(t, err, speech.ErrUnavailable)
	assert.Empty(t, audio.Data)
	assert.Empty(t, audio.ContentType)
}
