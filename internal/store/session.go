package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
)

// ModifyFn mutates a study session inside SessionStore.Modify. Returning an
// error abandons the change.
type ModifyFn func(s *domain.StudySession) error

// SessionStore defines the interface for study session persistence.
// Implementations hand out copies: mutating a returned session has no
// effect until it is written back.
type SessionStore interface {
	// Create saves a new session.
	// Returns ErrSessionExists if the ID is taken and ErrInvalidEntity if
	// the session fails validation.
	Create(ctx context.Context, s *domain.StudySession) error

	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if the session does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Update overwrites an existing session and refreshes UpdatedAt.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, s *domain.StudySession) error

	// Modify loads a session, applies fn and saves the result atomically
	// with respect to other Modify and Update calls for the same ID.
	// Returns the saved session, ErrSessionNotFound, or fn's error.
	Modify(ctx context.Context, id uuid.UUID, fn ModifyFn) (*domain.StudySession, error)

	// Delete removes a session.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdleSince removes sessions not updated since cutoff and reports
	// how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}
