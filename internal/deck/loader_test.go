package deck

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const koBundled = `[
	{"word": "하나", "meaning": "one"},
	{"word": "둘", "meaning": "two"},
	{"word": "셋", "meaning": "three"}
]`

type fakeAnnotator struct {
	calls    atomic.Int32
	readings map[string]string
	err      error
}

func (f *fakeAnnotator) Reading(_ context.Context, word string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.readings[word], nil
}

func TestLoaderPrefersValidUpload(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"words_ko.json": {Data: []byte(koBundled)}}
	l := NewLoader(files, discardLogger)

	res, err := l.Load(context.Background(), Request{
		Language: "ko",
		Upload:   []byte(`{"Food": [{"word": "밥", "meaning": "rice"}]}`),
	})
	require.NoError(t, err)

	assert.Equal(t, SourceUpload, res.Source)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []UnitSummary{{Label: "Food", Size: 1}}, res.Units)
	assert.Equal(t, []string{"Food"}, res.Selected)
	require.Equal(t, 1, res.Deck.Len())
	assert.Equal(t, "Food", res.Deck.At(0).SourceUnit)
}

func TestLoaderMalformedUploadFallsThroughToBundled(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"words_ko.json": {Data: []byte(koBundled)}}
	l := NewLoader(files, discardLogger)

	res, err := l.Load(context.Background(), Request{Language: "ko", Upload: []byte(`[{"word": "밥"`)})
	require.NoError(t, err)

	assert.Equal(t, SourceBundled, res.Source)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "uploaded deck ignored")
	assert.Equal(t, 3, res.Deck.Len())
	assert.Equal(t, []string{"Unit 1 (1-3)"}, res.Selected)
}

func TestLoaderFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		files        fstest.MapFS
		upload       []byte
		wantWarnings int
	}{
		{"missing file", fstest.MapFS{}, nil, 1},
		{"malformed file", fstest.MapFS{"words_th.json": {Data: []byte(`{"broken"`)}}, nil, 2},
		{"malformed upload and missing file", fstest.MapFS{}, []byte(`42`), 2},
		{"no filesystem", nil, nil, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var l *Loader
			if tc.files == nil {
				l = NewLoader(nil, discardLogger)
			} else {
				l = NewLoader(tc.files, discardLogger)
			}

			res, err := l.Load(context.Background(), Request{Language: "th", Upload: tc.upload})
			require.NoError(t, err)

			assert.Equal(t, SourcePlaceholder, res.Source)
			assert.Len(t, res.Warnings, tc.wantWarnings)
			assert.False(t, res.Deck.IsEmpty())
			assert.LessOrEqual(t, res.Deck.Len(), 3)
		})
	}
}

func TestLoaderPlaceholderIsDeterministicAndCapped(t *testing.T) {
	t.Parallel()

	l := NewLoader(nil, discardLogger, WithPlaceholder(func(string) []domain.WordEntry {
		return makeEntries(10)
	}))

	first, err := l.Load(context.Background(), Request{Language: "ja"})
	require.NoError(t, err)
	second, err := l.Load(context.Background(), Request{Language: "ja"})
	require.NoError(t, err)

	assert.Equal(t, 3, first.Deck.Len())
	assert.Equal(t, first.Deck.Fingerprint(), second.Deck.Fingerprint())
}

func TestLoaderEmptySelectionHalts(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"words_ko.json": {Data: []byte(koBundled)}}
	l := NewLoader(files, discardLogger)

	res, err := l.Load(context.Background(), Request{Language: "ko", Selected: []string{}})
	require.NoError(t, err)

	assert.True(t, res.Halted)
	assert.True(t, res.Deck.IsEmpty())
	assert.Empty(t, res.Selected)
	assert.Len(t, res.Units, 1, "units stay available so the learner can pick one")
}

func TestLoaderWarnsAboutUnknownUnits(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"words_ko.json": {Data: []byte(koBundled)}}
	l := NewLoader(files, discardLogger, WithUnitSize(2))

	res, err := l.Load(context.Background(), Request{
		Language: "ko",
		Selected: []string{"Unit 2 (3-3)", "Unit 7 (13-14)"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Unit 2 (3-3)"}, res.Selected)
	assert.Equal(t, 1, res.Deck.Len())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Unit 7 (13-14)")
}

func TestLoaderUnknownLanguage(t *testing.T) {
	t.Parallel()

	l := NewLoader(nil, discardLogger)
	_, err := l.Load(context.Background(), Request{Language: "de"})
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestLoaderAnnotatesConfiguredLanguagesOnce(t *testing.T) {
	t.Parallel()

	ann := &fakeAnnotator{readings: map[string]string{"水": "ミズ"}}
	files := fstest.MapFS{"words_ja.json": {Data: []byte(`[
		{"word": "水", "meaning": "water"},
		{"word": "火", "meaning": "fire", "reading": "ひ"}
	]`)}}
	l := NewLoader(files, discardLogger, WithAnnotator(ann, "ja"))

	res, err := l.Load(context.Background(), Request{Language: "ja"})
	require.NoError(t, err)

	assert.Equal(t, "ミズ", res.Deck.At(0).Reading)
	assert.Equal(t, "ひ", res.Deck.At(1).Reading, "existing readings are kept")
	assert.Equal(t, int32(1), ann.calls.Load())

	_, err = l.Load(context.Background(), Request{Language: "ja"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), ann.calls.Load(), "parsed payloads are cached")
}

func TestLoaderAnnotationFailureLeavesReadingEmpty(t *testing.T) {
	t.Parallel()

	ann := &fakeAnnotator{err: errors.New("tokenizer down")}
	files := fstest.MapFS{"words_ja.json": {Data: []byte(`[{"word": "水", "meaning": "water"}]`)}}
	l := NewLoader(files, discardLogger, WithAnnotator(ann, "ja"))

	res, err := l.Load(context.Background(), Request{Language: "ja"})
	require.NoError(t, err)
	assert.Empty(t, res.Deck.At(0).Reading)
}

func TestLoaderSkipsAnnotationForOtherLanguages(t *testing.T) {
	t.Parallel()

	ann := &fakeAnnotator{}
	files := fstest.MapFS{"words_ko.json": {Data: []byte(koBundled)}}
	l := NewLoader(files, discardLogger, WithAnnotator(ann, "ja"))

	_, err := l.Load(context.Background(), Request{Language: "ko"})
	require.NoError(t, err)
	assert.Zero(t, ann.calls.Load())
}
