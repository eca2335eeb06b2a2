package session

import "errors"

// Transition errors. The API maps these to 409 Conflict, except
// ErrInvalidDirection and ErrInvalidMode which are validation failures.
var (
	// ErrWrongMode is returned for a transition that the active mode does not allow.
	ErrWrongMode = errors.New("transition not allowed in current mode")

	// ErrNotAnswered is returned by Next before the current question is answered.
	ErrNotAnswered = errors.New("question not answered yet")

	// ErrAlreadyAnswered is returned by Answer when the question was already answered.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrUnknownOption is returned by Answer for a word that is not among the options.
	ErrUnknownOption = errors.New("answer is not one of the options")

	// ErrInvalidDirection is returned by Advance for a direction other than +1 or -1.
	ErrInvalidDirection = errors.New("direction must be 1 or -1")

	// ErrInvalidMode is returned by SetMode for an unknown mode.
	ErrInvalidMode = errors.New("invalid study mode")
)
