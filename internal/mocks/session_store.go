package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/store"
)

// MockSessionStore implements store.SessionStore with overridable behavior.
// Methods without a function field return Err.
type MockSessionStore struct {
	CreateFn          func(ctx context.Context, s *domain.StudySession) error
	GetFn             func(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)
	UpdateFn          func(ctx context.Context, s *domain.StudySession) error
	ModifyFn          func(ctx context.Context, id uuid.UUID, fn store.ModifyFn) (*domain.StudySession, error)
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	DeleteIdleSinceFn func(ctx context.Context, cutoff time.Time) (int64, error)

	Err error
}

var _ store.SessionStore = (*MockSessionStore)(nil)

// Create implements store.SessionStore.
func (m *MockSessionStore) Create(ctx context.Context, s *domain.StudySession) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return m.Err
}

// Get implements store.SessionStore.
func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.Err
}

// Update implements store.SessionStore.
func (m *MockSessionStore) Update(ctx context.Context, s *domain.StudySession) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, s)
	}
	return m.Err
}

// Modify implements store.SessionStore.
func (m *MockSessionStore) Modify(
	ctx context.Context,
	id uuid.UUID,
	fn store.ModifyFn,
) (*domain.StudySession, error) {
	if m.ModifyFn != nil {
		return m.ModifyFn(ctx, id, fn)
	}
	return nil, m.Err
}

// Delete implements store.SessionStore.
func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// DeleteIdleSince implements store.SessionStore.
func (m *MockSessionStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteIdleSinceFn != nil {
		return m.DeleteIdleSinceFn(ctx, cutoff)
	}
	return 0, m.Err
}
