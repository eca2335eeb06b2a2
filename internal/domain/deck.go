package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Unit is a named group of entries within a deck.
type Unit struct {
	Label   string
	Entries []WordEntry
}

// Len returns the number of entries in the unit.
func (u Unit) Len() int {
	return len(u.Entries)
}

// Deck is the ordered, active sequence of entries a session studies.
type Deck struct {
	Entries []WordEntry
}

// Len returns the number of entries in the deck.
func (d Deck) Len() int {
	return len(d.Entries)
}

// IsEmpty reports whether the deck has no entries.
func (d Deck) IsEmpty() bool {
	return len(d.Entries) == 0
}

// At returns the entry at index i, wrapping modulo the deck length.
// It panics on an empty deck.
func (d Deck) At(i int) WordEntry {
	n := len(d.Entries)
	return d.Entries[((i%n)+n)%n]
}

// Contains reports whether an entry with the given word is in the deck.
func (d Deck) Contains(word string) bool {
	for _, e := range d.Entries {
		if e.Word == word {
			return true
		}
	}
	return false
}

// Fingerprint identifies the deck content. Two decks with the same entries
// in the same order, tagged with the same units, share a fingerprint.
func (d Deck) Fingerprint() string {
	h := sha256.New()
	for _, e := range d.Entries {
		for _, field := range []string{e.SourceUnit, e.Word, e.Meaning} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}
