package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/service"
	"github.com/phrazzld/wordflip/internal/session"
	"github.com/phrazzld/wordflip/internal/speech"
	"github.com/stretchr/testify/mock"
)

// MockStudyService implements service.StudyService using testify's mock.
type MockStudyService struct {
	mock.Mock
}

var _ service.StudyService = (*MockStudyService)(nil)

func snapshotResult(args mock.Arguments) (*service.Snapshot, error) {
	var snap *service.Snapshot
	if v := args.Get(0); v != nil {
		snap = v.(*service.Snapshot)
	}
	return snap, args.Error(1)
}

// Start implements service.StudyService.
func (m *MockStudyService) Start(ctx context.Context, language string) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, language))
}

// View implements service.StudyService.
func (m *MockStudyService) View(ctx context.Context, id uuid.UUID) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id))
}

// SwitchLanguage implements service.StudyService.
func (m *MockStudyService) SwitchLanguage(
	ctx context.Context,
	id uuid.UUID,
	language string,
) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id, language))
}

// UploadDeck implements service.StudyService.
func (m *MockStudyService) UploadDeck(
	ctx context.Context,
	id uuid.UUID,
	data []byte,
) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id, data))
}

// ClearUpload implements service.StudyService.
func (m *MockStudyService) ClearUpload(ctx context.Context, id uuid.UUID) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id))
}

// SelectUnits implements service.StudyService.
func (m *MockStudyService) SelectUnits(
	ctx context.Context,
	id uuid.UUID,
	units []string,
) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id, units))
}

// SetMode implements service.StudyService.
func (m *MockStudyService) SetMode(
	ctx context.Context,
	id uuid.UUID,
	mode domain.StudyMode,
) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id, mode))
}

// Flip implements service.StudyService.
func (m *MockStudyService) Flip(ctx context.Context, id uuid.UUID) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id))
}

// Advance implements service.StudyService.
func (m *MockStudyService) Advance(
	ctx context.Context,
	id uuid.UUID,
	dir session.Direction,
) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id, dir))
}

// Answer implements service.StudyService.
func (m *MockStudyService) Answer(ctx context.Context, id uuid.UUID, word string) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id, word))
}

// NextQuestion implements service.StudyService.
func (m *MockStudyService) NextQuestion(ctx context.Context, id uuid.UUID) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id))
}

// Analyze implements service.StudyService.
func (m *MockStudyService) Analyze(ctx context.Context, id uuid.UUID) (*service.Snapshot, error) {
	return snapshotResult(m.Called(ctx, id))
}

// Audio implements service.StudyService.
func (m *MockStudyService) Audio(ctx context.Context, id uuid.UUID) (speech.Audio, error) {
	args := m.Called(ctx, id)
	var audio speech.Audio
	if v := args.Get(0); v != nil {
		audio = v.(speech.Audio)
	}
	return audio, args.Error(1)
}
