package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/service"
)

// CreateSessionRequest is the body of POST /api/sessions. An empty language
// selects the default.
type CreateSessionRequest struct {
	Language string `json:"language" validate:"omitempty,max=8"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID uuid.UUID         `json:"session_id"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Snapshot  *service.Snapshot `json:"snapshot"`
}

// LanguageRequest is the body of PUT /api/session/language.
type LanguageRequest struct {
	Language string `json:"language" validate:"required,max=8"`
}

// UnitsRequest is the body of PUT /api/session/units. An empty list is
// allowed and halts the session.
type UnitsRequest struct {
	Units []string `json:"units" validate:"required,dive,required"`
}

// ModeRequest is the body of PUT /api/session/mode.
type ModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=browse quiz"`
}

// AdvanceRequest is the body of POST /api/session/advance.
type AdvanceRequest struct {
	Direction int `json:"direction" validate:"required,oneof=1 -1"`
}

// AnswerRequest is the body of POST /api/session/quiz/answer.
type AnswerRequest struct {
	Word string `json:"word" validate:"required"`
}

// LanguagesResponse lists the supported languages.
type LanguagesResponse struct {
	Languages []domain.Language `json:"languages"`
	Default   string            `json:"default"`
}
