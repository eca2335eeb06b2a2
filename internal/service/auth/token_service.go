// Package auth issues and validates the signed tokens that bind an HTTP
// client to its study session.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenType is the value of the "type" claim on session tokens.
const TokenType = "session"

// TokenService defines operations for managing session tokens.
type TokenService interface {
	// GenerateToken creates a signed token for the session and reports when
	// it expires.
	GenerateToken(ctx context.Context, sessionID uuid.UUID) (string, time.Time, error)

	// ValidateToken checks the token and extracts its claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a session token.
type Claims struct {
	SessionID uuid.UUID
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
