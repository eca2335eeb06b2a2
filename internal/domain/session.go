package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// StudyMode selects which half of the session state machine is active.
type StudyMode string

// Supported study modes.
const (
	ModeBrowse StudyMode = "browse"
	ModeQuiz   StudyMode = "quiz"
)

// Valid reports whether m is a known mode.
func (m StudyMode) Valid() bool {
	return m == ModeBrowse || m == ModeQuiz
}

// AudioRef records which text and language the cached audio belongs to.
type AudioRef struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

// SessionState is the serializable state of one study session. It is
// transformed by the pure functions of the session package.
type SessionState struct {
	Language        string      `json:"language"`
	DeckFingerprint string      `json:"deck_fingerprint"`
	Mode            StudyMode   `json:"mode"`
	CurrentIndex    int         `json:"current_index"`
	Flipped         bool        `json:"flipped"`
	Analysis        *Analysis   `json:"ai_analysis,omitempty"`
	Audio           *AudioRef   `json:"audio,omitempty"`
	QuizScore       int         `json:"quiz_score"`
	QuizAttempts    int         `json:"quiz_attempts"`
	QuizAnswered    bool        `json:"quiz_answered"`
	QuizCorrect     bool        `json:"quiz_correct"`
	QuizOptions     []WordEntry `json:"quiz_options,omitempty"`
}

// Clone returns a deep copy of the state.
func (s SessionState) Clone() SessionState {
	if s.Analysis != nil {
		a := *s.Analysis
		s.Analysis = &a
	}
	if s.Audio != nil {
		a := *s.Audio
		s.Audio = &a
	}
	s.QuizOptions = slices.Clone(s.QuizOptions)
	return s
}

// Validation errors for StudySession.
var (
	ErrEmptySessionID = errors.New("session ID cannot be empty")
	ErrInvalidUpload  = errors.New("session upload must be valid JSON")
)

// StudySession is the persisted record behind a session token: the chosen
// language, an optional uploaded deck, the unit selection and the state.
type StudySession struct {
	ID       uuid.UUID       `json:"id"`
	Language string          `json:"language"`
	Upload   json.RawMessage `json:"upload,omitempty"`
	// SelectedUnits is nil until the learner picks units. A non-nil empty
	// slice means every unit was deselected.
	SelectedUnits []string     `json:"selected_units"`
	State         SessionState `json:"state"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewStudySession creates a session for the given language with a fresh ID
// and default state.
func NewStudySession(language string) (*StudySession, error) {
	now := time.Now().UTC()
	s := &StudySession{
		ID:        uuid.New(),
		Language:  language,
		State:     SessionState{Language: language, Mode: ModeBrowse},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}

	if _, err := LookupLanguage(s.Language); err != nil {
		return err
	}

	if len(s.Upload) > 0 && !json.Valid(s.Upload) {
		return ErrInvalidUpload
	}

	if s.State.Mode != "" && !s.State.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrValidation, s.State.Mode)
	}

	return nil
}

// Clone returns a deep copy of the session. Selection nil-ness is preserved.
func (s *StudySession) Clone() *StudySession {
	c := *s
	c.Upload = slices.Clone(s.Upload)
	if s.SelectedUnits != nil {
		c.SelectedUnits = append([]string{}, s.SelectedUnits...)
	}
	c.State = s.State.Clone()
	return &c
}
