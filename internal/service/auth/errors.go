package auth

import "errors"

// Session token errors
var (
	// ErrInvalidToken indicates the token format is invalid, its signature
	// doesn't match, or it was not issued for a study session.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("session token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("session token is missing")
)
