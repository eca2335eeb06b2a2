package furigana

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shared     *Annotator
	sharedErr  error
	sharedOnce sync.Once
)

func annotator(t *testing.T) *Annotator {
	t.Helper()
	sharedOnce.Do(func() { shared, sharedErr = NewAnnotator() })
	require.NoError(t, sharedErr)
	return shared
}

func TestReading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want string
	}{
		{"水", "ミズ"},
		{"学校", "ガッコウ"},
		{"食べる", "タベル"},
		{"こんにちは", ""},
		{"コーヒー", ""},
	}

	a := annotator(t)
	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			t.Parallel()
			got, err := a.Reading(context.Background(), tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadingCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := annotator(t).Reading(ctx, "水")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToKatakana(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "タベル", toKatakana("たべる"))
	assert.Equal(t, "ABC水", toKatakana("ABC水"))
}
