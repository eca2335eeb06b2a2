// Package memory provides an in-process implementation of store.SessionStore
// used when no database is configured.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/platform/logger"
	"github.com/phrazzld/wordflip/internal/store"
)

// SessionStore keeps study sessions in a map guarded by a mutex. Sessions are
// copied on the way in and on the way out.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.StudySession
	logger   *slog.Logger
	now      func() time.Time
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates an empty store. A nil logger uses slog.Default().
func NewSessionStore(l *slog.Logger) *SessionStore {
	if l == nil {
		l = slog.Default()
	}
	return &SessionStore{
		sessions: make(map[uuid.UUID]*domain.StudySession),
		logger:   l.With(slog.String("component", "memory_session_store")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Create implements store.SessionStore.
func (s *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return store.ErrSessionExists
	}
	s.sessions[session.ID] = session.Clone()

	logger.FromContextOrDefault(ctx, s.logger).Debug("study session created",
		slog.String("session_id", session.ID.String()),
		slog.String("language", session.Language))
	return nil
}

// Get implements store.SessionStore.
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Update implements store.SessionStore.
func (s *SessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return store.ErrSessionNotFound
	}
	session.UpdatedAt = s.now()
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Modify implements store.SessionStore. fn runs under the store's write lock
// and must not call back into the store.
func (s *SessionStore) Modify(
	ctx context.Context,
	id uuid.UUID,
	fn store.ModifyFn,
) (*domain.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	if err := working.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	working.UpdatedAt = s.now()
	s.sessions[id] = working
	return working.Clone(), nil
}

// Delete implements store.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return store.ErrSessionNotFound
	}
	delete(s.sessions, id)

	logger.FromContextOrDefault(ctx, s.logger).Debug("study session deleted",
		slog.String("session_id", id.String()))
	return nil
}

// DeleteIdleSince implements store.SessionStore.
func (s *SessionStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
