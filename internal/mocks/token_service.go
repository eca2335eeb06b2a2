package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	GenerateTokenFn func(ctx context.Context, sessionID uuid.UUID) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults used when the function fields are nil.
	Token       string
	ExpiresAt   time.Time
	Err         error
	Claims      *auth.Claims
	ValidateErr error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// GenerateToken implements auth.TokenService.
func (m *MockTokenService) GenerateToken(
	ctx context.Context,
	sessionID uuid.UUID,
) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, sessionID)
	}
	return m.Token, m.ExpiresAt, m.Err
}

// ValidateToken implements auth.TokenService.
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// ForSession returns a MockTokenService that accepts any token as belonging
// to sessionID.
func ForSession(sessionID uuid.UUID) *MockTokenService {
	return &MockTokenService{
		Token:     "test-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Claims: &auth.Claims{
			SessionID: sessionID,
			TokenType: auth.TokenType,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}
