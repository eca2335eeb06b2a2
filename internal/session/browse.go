package session

import "github.com/phrazzld/wordflip/internal/domain"

// Direction is a step through the deck.
type Direction int

// Steps accepted by Advance.
const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Valid reports whether d is Forward or Backward.
func (d Direction) Valid() bool {
	return d == Forward || d == Backward
}

// ToggleFlip turns the current card over. Only allowed while browsing.
func ToggleFlip(s State) (State, error) {
	if s.Mode == domain.ModeQuiz {
		return s, ErrWrongMode
	}
	next := s.Clone()
	next.Flipped = !next.Flipped
	return next, nil
}

// Advance moves the cursor one step, wrapping at both ends, and shows the
// new card face down with no cached enrichment or audio.
func Advance(s State, deck domain.Deck, dir Direction) (State, error) {
	if !dir.Valid() {
		return s, ErrInvalidDirection
	}
	if s.Mode == domain.ModeQuiz {
		return s, ErrWrongMode
	}
	if deck.IsEmpty() {
		return s, domain.ErrEmptyDeck
	}

	next := clearCard(s)
	next.CurrentIndex = wrap(s.CurrentIndex+int(dir), deck.Len())
	return next, nil
}
