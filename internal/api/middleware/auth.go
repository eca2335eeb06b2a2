package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/wordflip/internal/api/shared"
	"github.com/phrazzld/wordflip/internal/service/auth"
)

// AuthMiddleware resolves the bearer session token of a request.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware backed by tokens.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the "Authorization: Bearer <token>" header and
// stores the session id of the token in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateToken(r.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrExpiredToken):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			return
		case errors.Is(err, auth.ErrInvalidToken):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
			return
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithSessionID(r.Context(), claims.SessionID)))
	})
}

// GetSessionID returns the session id placed in the context by Authenticate.
func GetSessionID(r *http.Request) (uuid.UUID, bool) {
	return shared.SessionIDFromContext(r.Context())
}
