package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/api/shared"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/platform/logger"
	"github.com/phrazzld/wordflip/internal/service"
	"github.com/phrazzld/wordflip/internal/service/auth"
	"github.com/phrazzld/wordflip/internal/session"
	"github.com/phrazzld/wordflip/internal/speech"
)

// MaxDeckBytes bounds an uploaded deck document.
const MaxDeckBytes = 2 << 20

// SessionHandler serves the study session endpoints.
type SessionHandler struct {
	studyService service.StudyService
	tokens       auth.TokenService
	logger       *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(
	studyService service.StudyService,
	tokens auth.TokenService,
	logger *slog.Logger,
) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		studyService: studyService,
		tokens:       tokens,
		logger:       logger.With("component", "session_handler"),
	}
}

func (h *SessionHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// sessionID returns the authenticated session id or writes a 401.
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := shared.SessionIDFromContext(r.Context())
	if !ok {
		h.log(r).Warn("session ID missing from request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return uuid.Nil, false
	}
	return id, true
}

// decode reads and validates a JSON command body, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, SanitizeValidationError(err))
		return false
	}
	return true
}

// respond writes snap as 200 or maps err.
func respond(w http.ResponseWriter, r *http.Request, snap *service.Snapshot, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snap)
}

type snapshotCall func(ctx context.Context, id uuid.UUID) (*service.Snapshot, error)

// bodyless adapts a service call that needs only the session id.
func (h *SessionHandler) bodyless(call snapshotCall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.sessionID(w, r)
		if !ok {
			return
		}
		snap, err := call(r.Context(), id)
		respond(w, r, snap, err)
	}
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength != 0 {
		if !decode(w, r, &req) {
			return
		}
	}

	snap, err := h.studyService.Start(r.Context(), req.Language)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(r.Context(), snap.SessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to issue session token", err)
		return
	}

	h.log(r).Info("study session created",
		slog.String("session_id", snap.SessionID.String()),
		slog.String("language", snap.Language.Code))

	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{
		SessionID: snap.SessionID,
		Token:     token,
		ExpiresAt: expiresAt,
		Snapshot:  snap,
	})
}

// GetSession handles GET /api/session.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.bodyless(h.studyService.View)(w, r)
}

// SwitchLanguage handles PUT /api/session/language.
func (h *SessionHandler) SwitchLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req LanguageRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.studyService.SwitchLanguage(r.Context(), id, req.Language)
	respond(w, r, snap, err)
}

// UploadDeck handles PUT /api/session/deck. The body is the raw deck
// document; a malformed document is reported as a snapshot warning.
func (h *SessionHandler) UploadDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	data, err := shared.ReadBody(w, r, MaxDeckBytes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if len(data) == 0 {
		HandleAPIError(w, r, domain.ErrEmptyContent, "Deck body is empty")
		return
	}
	snap, err := h.studyService.UploadDeck(r.Context(), id, data)
	respond(w, r, snap, err)
}

// ClearDeck handles DELETE /api/session/deck.
func (h *SessionHandler) ClearDeck(w http.ResponseWriter, r *http.Request) {
	h.bodyless(h.studyService.ClearUpload)(w, r)
}

// SelectUnits handles PUT /api/session/units.
func (h *SessionHandler) SelectUnits(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req UnitsRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.studyService.SelectUnits(r.Context(), id, req.Units)
	respond(w, r, snap, err)
}

// SetMode handles PUT /api/session/mode.
func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req ModeRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.studyService.SetMode(r.Context(), id, domain.StudyMode(req.Mode))
	respond(w, r, snap, err)
}

// Flip handles POST /api/session/flip.
func (h *SessionHandler) Flip(w http.ResponseWriter, r *http.Request) {
	h.bodyless(h.studyService.Flip)(w, r)
}

// Advance handles POST /api/session/advance.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req AdvanceRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.studyService.Advance(r.Context(), id, session.Direction(req.Direction))
	respond(w, r, snap, err)
}

// Answer handles POST /api/session/quiz/answer.
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req AnswerRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.studyService.Answer(r.Context(), id, req.Word)
	respond(w, r, snap, err)
}

// NextQuestion handles POST /api/session/quiz/next.
func (h *SessionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	h.bodyless(h.studyService.NextQuestion)(w, r)
}

// Analyze handles POST /api/session/analysis.
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	h.bodyless(h.studyService.Analyze)(w, r)
}

// Audio handles GET /api/session/audio. It answers 204 when synthesis is
// unavailable so clients can fall back silently.
func (h *SessionHandler) Audio(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	audio, err := h.studyService.Audio(r.Context(), id)
	if errors.Is(err, speech.ErrUnavailable) {
		h.log(r).Debug("audio unavailable", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio.Data); err != nil {
		h.log(r).Error("failed to write audio response", "error", err)
	}
}

// ListLanguages handles GET /api/languages.
func ListLanguages(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, LanguagesResponse{
		Languages: domain.Languages(),
		Default:   domain.DefaultLanguage,
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.FromContext(r.Context()).Error("failed to write health check response", "error", err)
	}
}
