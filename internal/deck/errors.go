package deck

import (
	"fmt"

	"github.com/phrazzld/wordflip/internal/domain"
)

// DataFormatError reports a deck source that could not be parsed into
// entries. It matches domain.ErrInvalidFormat with errors.Is.
type DataFormatError struct {
	// Source names where the data came from, e.g. "upload" or a file name.
	Source string
	Err    error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%s: %s: %v", domain.ErrInvalidFormat, e.Source, e.Err)
}

// Unwrap exposes both the format sentinel and the underlying cause.
func (e *DataFormatError) Unwrap() []error {
	return []error{domain.ErrInvalidFormat, e.Err}
}
