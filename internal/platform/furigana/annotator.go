// Package furigana derives katakana readings for Japanese vocabulary with
// the kagome morphological analyzer and the IPA dictionary.
package furigana

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ErrNoReading is returned when the dictionary knows none of the word's
// kanji.
var ErrNoReading = errors.New("no reading found")

// IPA features: index 7 holds the katakana reading.
const readingFeature = 7

// Annotator implements deck.Annotator.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// NewAnnotator loads the IPA dictionary. This takes a moment and a few tens
// of megabytes, so create one per process.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// Reading returns the katakana reading of word. Words without kanji need no
// reading and yield "".
func (a *Annotator) Reading(ctx context.Context, word string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !hasKanji(word) {
		return "", nil
	}

	var sb strings.Builder
	known := false
	for _, token := range a.t.Tokenize(word) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		features := token.Features()
		if len(features) > readingFeature && features[readingFeature] != "*" {
			sb.WriteString(features[readingFeature])
			if hasKanji(token.Surface) {
				known = true
			}
			continue
		}
		sb.WriteString(toKatakana(token.Surface))
	}

	if !known {
		return "", ErrNoReading
	}
	return sb.String(), nil
}

func hasKanji(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// toKatakana shifts hiragana into the katakana block; other runes pass
// through.
func toKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ぁ' && r <= 'ゖ' {
			return r + ('ァ' - 'ぁ')
		}
		return r
	}, s)
}
