package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDeck() Deck {
	return Deck{Entries: []WordEntry{
		{Word: "하나", Meaning: "one", SourceUnit: "Unit 1 (1-3)"},
		{Word: "둘", Meaning: "two", SourceUnit: "Unit 1 (1-3)"},
		{Word: "셋", Meaning: "three", SourceUnit: "Unit 1 (1-3)"},
	}}
}

func TestDeckAtWraps(t *testing.T) {
	t.Parallel()
	d := sampleDeck()

	assert.Equal(t, "하나", d.At(0).Word)
	assert.Equal(t, "셋", d.At(2).Word)
	assert.Equal(t, "하나", d.At(3).Word)
	assert.Equal(t, "셋", d.At(-1).Word)
	assert.Equal(t, "둘", d.At(-5).Word)
}

func TestDeckContains(t *testing.T) {
	t.Parallel()
	d := sampleDeck()

	assert.True(t, d.Contains("둘"))
	assert.False(t, d.Contains("넷"))
	assert.False(t, Deck{}.Contains("둘"))
	assert.True(t, Deck{}.IsEmpty())
}

func TestDeckFingerprint(t *testing.T) {
	t.Parallel()

	a := sampleDeck()
	b := sampleDeck()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "equal decks share a fingerprint")

	reordered := Deck{Entries: []WordEntry{b.Entries[1], b.Entries[0], b.Entries[2]}}
	assert.NotEqual(t, a.Fingerprint(), reordered.Fingerprint())

	retagged := sampleDeck()
	retagged.Entries[0].SourceUnit = "Unit 2 (21-23)"
	assert.NotEqual(t, a.Fingerprint(), retagged.Fingerprint())

	// Field boundaries matter: "ab"+"c" must differ from "a"+"bc".
	x := Deck{Entries: []WordEntry{{Word: "ab", Meaning: "c"}}}
	y := Deck{Entries: []WordEntry{{Word: "a", Meaning: "bc"}}}
	assert.NotEqual(t, x.Fingerprint(), y.Fingerprint())
}

func TestAnalysisWithPlaceholders(t *testing.T) {
	t.Parallel()

	a := Analysis{Root: "from 사랑하다", Scenario: "A: 사랑해요"}.WithPlaceholders()

	assert.Equal(t, "from 사랑하다", a.Root)
	assert.Equal(t, AnalysisPlaceholder, a.Mnemonic)
	assert.Equal(t, "A: 사랑해요", a.Scenario)
	assert.Equal(t, AnalysisPlaceholder, a.ScenarioCN)
}
