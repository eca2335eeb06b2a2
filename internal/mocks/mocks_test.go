package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/enrich"
	"github.com/phrazzld/wordflip/internal/service"
	"github.com/phrazzld/wordflip/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMockAnalyzer(t *testing.T) {
	t.Parallel()

	ko, err := domain.LookupLanguage("ko")
	require.NoError(t, err)
	req := enrich.Request{Word: "사과", Meaning: "apple", Language: ko}

	m := &MockAnalyzer{Analysis: domain.Analysis{Root: "사과 (沙果)"}}
	got, err := m.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "사과 (沙果)", got.Root)

	m.AnalyzeFn = func(context.Context, enrich.Request) (domain.Analysis, error) {
		return domain.Analysis{}, enrich.ErrTransientFailure
	}
	_, err = m.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, enrich.ErrTransientFailure)
	assert.Equal(t, []enrich.Request{req, req}, m.Requests())
}

func TestMockSynthesizer(t *testing.T) {
	t.Parallel()

	m := &MockSynthesizer{Err: speech.ErrUnavailable}
	_, err := m.Synthesize(context.Background(), "น้ำ", "th-TH")
	assert.ErrorIs(t, err, speech.ErrUnavailable)
	assert.Equal(t, []SynthesizeCall{{Text: "น้ำ", LanguageCode: "th-TH"}}, m.Calls())
}

func TestMockTokenService(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	m := ForSession(id)
	token, _, err := m.GenerateToken(context.Background(), id)
	require.NoError(t, err)
	claims, err := m.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
}

func TestMockSessionStore(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := &MockSessionStore{Err: boom}
	_, err := m.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	_, err = m.Modify(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestMockStudyService(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	m := &MockStudyService{}
	m.On("View", mock.Anything, id).Return(&service.Snapshot{SessionID: id}, nil)
	m.On("Audio", mock.Anything, id).Return(nil, speech.ErrUnavailable)

	snap, err := m.View(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.SessionID)

	_, err = m.Audio(context.Background(), id)
	assert.ErrorIs(t, err, speech.ErrUnavailable)
	m.AssertExpectations(t)
}
