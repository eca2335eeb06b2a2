// Package session implements the study state machine as pure functions over
// a serializable State. Every transition takes a state and returns a new
// one; nothing here performs I/O.
//
// Browsing: ToggleFlip and Advance move through the deck.
// Quizzing: EnsureOptions prepares a question, Answer scores it and Next
// moves on. Reconcile resets the state when the language or deck changes.
package session

import (
	"github.com/phrazzld/wordflip/internal/domain"
)

// State is the serializable session state.
type State = domain.SessionState

// New returns the initial state for a language and deck.
func New(language string, deck domain.Deck) State {
	return State{
		Language:        language,
		DeckFingerprint: deck.Fingerprint(),
		Mode:            domain.ModeBrowse,
	}
}

// Reconcile aligns s with the active language and deck. When either differs
// from what s was built for, the state is reset to initial values, keeping
// only the study mode, and changed is true. Otherwise the index is brought
// back into range if needed.
func Reconcile(s State, language string, deck domain.Deck) (next State, changed bool) {
	fp := deck.Fingerprint()
	if s.Language != language || s.DeckFingerprint != fp {
		next = New(language, deck)
		if s.Mode.Valid() {
			next.Mode = s.Mode
		}
		return next, true
	}

	next = s.Clone()
	if !next.Mode.Valid() {
		next.Mode = domain.ModeBrowse
	}
	if n := deck.Len(); n > 0 {
		next.CurrentIndex = wrap(next.CurrentIndex, n)
	}
	return next, false
}

// Current returns the entry under the cursor. The deck must not be empty.
func Current(s State, deck domain.Deck) domain.WordEntry {
	return deck.At(s.CurrentIndex)
}

// SetMode switches between browsing and quizzing. The index and score
// survive; flip state, cached enrichment and audio, and any pending
// question are cleared.
func SetMode(s State, mode domain.StudyMode) (State, error) {
	if !mode.Valid() {
		return s, ErrInvalidMode
	}
	if s.Mode == mode {
		return s, nil
	}

	next := clearCard(s)
	next.Mode = mode
	next.QuizAnswered = false
	next.QuizCorrect = false
	next.QuizOptions = nil
	return next, nil
}

// WithAnalysis attaches enrichment for the current card.
func WithAnalysis(s State, a domain.Analysis) State {
	next := s.Clone()
	next.Analysis = &a
	return next
}

// WithAudio records that audio for ref is cached for the current card.
func WithAudio(s State, ref domain.AudioRef) State {
	next := s.Clone()
	next.Audio = &ref
	return next
}

func clearCard(s State) State {
	next := s.Clone()
	next.Flipped = false
	next.Analysis = nil
	next.Audio = nil
	return next
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
