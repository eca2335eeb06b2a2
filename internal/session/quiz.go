package session

import (
	"math/rand/v2"
	"slices"

	"github.com/phrazzld/wordflip/internal/domain"
)

// OptionCount is the number of choices offered per question.
const OptionCount = 4

// PointsPerCorrect is added to the score for each correct answer.
const PointsPerCorrect = 10

// NoDistractorWord marks a filler option used when the deck has no other
// word to offer.
const NoDistractorWord = "(no distractor)"

// NoDistractor is the filler option.
var NoDistractor = domain.WordEntry{Word: NoDistractorWord, Meaning: "-"}

// Rand is the randomness used to build questions. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand draws from the math/rand/v2 global source.
var DefaultRand Rand = globalRand{}

// Options builds the choices for the current word: the word itself plus
// three distractors drawn without replacement from entries with a different
// word, shuffled. With fewer than three candidates they repeat cyclically;
// with none the distractors are NoDistractor.
func Options(deck domain.Deck, current domain.WordEntry, rng Rand) []domain.WordEntry {
	if rng == nil {
		rng = DefaultRand
	}

	var candidates []domain.WordEntry
	for _, e := range deck.Entries {
		if e.Word != current.Word {
			candidates = append(candidates, e)
		}
	}

	options := make([]domain.WordEntry, 0, OptionCount)
	options = append(options, current)

	switch {
	case len(candidates) == 0:
		for len(options) < OptionCount {
			options = append(options, NoDistractor)
		}
	case len(candidates) < OptionCount-1:
		for i := 0; len(options) < OptionCount; i++ {
			options = append(options, candidates[i%len(candidates)])
		}
	default:
		// Partial Fisher-Yates: the first three slots become the sample.
		for i := 0; i < OptionCount-1; i++ {
			j := i + rng.IntN(len(candidates)-i)
			candidates[i], candidates[j] = candidates[j], candidates[i]
			options = append(options, candidates[i])
		}
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// EnsureOptions makes sure a quiz state offers a question for the current
// word. Options are rebuilt when missing or when they do not contain the
// current word, which also starts a fresh, unanswered question. Browsing
// states are returned unchanged.
func EnsureOptions(s State, deck domain.Deck, rng Rand) State {
	if s.Mode != domain.ModeQuiz || deck.IsEmpty() {
		return s
	}

	current := Current(s, deck)
	if len(s.QuizOptions) == OptionCount && containsWord(s.QuizOptions, current.Word) {
		return s
	}

	next := s.Clone()
	next.QuizOptions = Options(deck, current, rng)
	next.QuizAnswered = false
	next.QuizCorrect = false
	return next
}

// Answer scores the selected word against the current entry. A correct
// answer adds PointsPerCorrect. The cached audio is dropped.
func Answer(s State, deck domain.Deck, word string) (State, error) {
	if s.Mode != domain.ModeQuiz {
		return s, ErrWrongMode
	}
	if deck.IsEmpty() {
		return s, domain.ErrEmptyDeck
	}
	if s.QuizAnswered {
		return s, ErrAlreadyAnswered
	}
	if !containsWord(s.QuizOptions, word) {
		return s, ErrUnknownOption
	}

	next := s.Clone()
	next.QuizAnswered = true
	next.QuizCorrect = word == Current(s, deck).Word
	next.QuizAttempts++
	if next.QuizCorrect {
		next.QuizScore += PointsPerCorrect
	}
	next.Audio = nil
	return next, nil
}

// Next moves to the following word after an answered question. The new
// question's options are built later by EnsureOptions.
func Next(s State, deck domain.Deck) (State, error) {
	if s.Mode != domain.ModeQuiz {
		return s, ErrWrongMode
	}
	if deck.IsEmpty() {
		return s, domain.ErrEmptyDeck
	}
	if !s.QuizAnswered {
		return s, ErrNotAnswered
	}

	next := clearCard(s)
	next.CurrentIndex = wrap(s.CurrentIndex+1, deck.Len())
	next.QuizAnswered = false
	next.QuizCorrect = false
	next.QuizOptions = nil
	return next, nil
}

func containsWord(options []domain.WordEntry, word string) bool {
	return slices.ContainsFunc(options, func(e domain.WordEntry) bool {
		return e.Word == word
	})
}
