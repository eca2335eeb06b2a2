package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wordflip/internal/api/shared"
	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/service"
	"github.com/phrazzld/wordflip/internal/service/auth"
	"github.com/phrazzld/wordflip/internal/session"
	"github.com/phrazzld/wordflip/internal/speech"
	"github.com/phrazzld/wordflip/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error itself to the client.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrNotAnswered),
		errors.Is(err, session.ErrAlreadyAnswered),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrEmptyDeck):
		return http.StatusUnprocessableEntity

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, session.ErrInvalidDirection),
		errors.Is(err, session.ErrInvalidMode),
		errors.Is(err, session.ErrUnknownOption),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, speech.ErrUnavailable):
		return http.StatusNoContent

	default:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that leaks no
// internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Session already exists"

	case errors.Is(err, session.ErrWrongMode):
		return "Not allowed in the current study mode"
	case errors.Is(err, session.ErrNotAnswered):
		return "Answer the current question first"
	case errors.Is(err, session.ErrAlreadyAnswered):
		return "Question already answered"
	case errors.Is(err, session.ErrUnknownOption):
		return "Answer is not one of the options"
	case errors.Is(err, session.ErrInvalidDirection):
		return "Direction must be 1 or -1"
	case errors.Is(err, session.ErrInvalidMode):
		return "Mode must be browse or quiz"

	case errors.Is(err, domain.ErrEmptySelection):
		return service.HaltedPrompt
	case errors.Is(err, domain.ErrEmptyDeck):
		return "The deck has no words"
	case errors.Is(err, domain.ErrUnknownLanguage):
		return "Unsupported language"
	case errors.Is(err, service.ErrUnknownUnit):
		return "Unknown unit"
	case errors.Is(err, shared.ErrBodyTooLarge):
		return "Request body too large"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Malformed request body"
	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	default:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return SanitizeValidationError(err)
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns a validator error into a short message
// naming the offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
