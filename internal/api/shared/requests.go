package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wordflip/internal/domain"
)

// MaxJSONBodyBytes bounds the small JSON command bodies.
const MaxJSONBodyBytes = 64 << 10

// ErrBodyTooLarge is returned when a request body exceeds its limit.
var ErrBodyTooLarge = fmt.Errorf("%w: request body too large", domain.ErrValidation)

var validate = validator.New()

// DecodeJSON decodes the request body into v. Malformed JSON is reported as
// domain.ErrInvalidFormat.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	return nil
}

// ReadBody reads at most limit bytes of the raw request body.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return data, nil
}

// ValidateRequest validates v with its Validate method when it has one,
// otherwise with its struct tags.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
