package service

import (
	"fmt"

	"github.com/phrazzld/wordflip/internal/domain"
)

// Warnings added to snapshots by the service itself.
const (
	// WarningAnalysisUnavailable is reported when enrichment failed or is
	// switched off. The session state is left untouched.
	WarningAnalysisUnavailable = "analysis_unavailable"
)

// ErrUnknownUnit is returned by SelectUnits when a label names no unit of
// the active deck.
var ErrUnknownUnit = fmt.Errorf("%w: unknown unit", domain.ErrValidation)

// StudyServiceError wraps unexpected failures with the operation that hit
// them.
type StudyServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for StudyServiceError.
func (e *StudyServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("study service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("study service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StudyServiceError) Unwrap() error {
	return e.Err
}

// NewStudyServiceError creates a new StudyServiceError.
func NewStudyServiceError(operation, message string, err error) *StudyServiceError {
	return &StudyServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
