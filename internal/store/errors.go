package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a record with the same key already exists.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when a record cannot be encoded or fails a
	// database constraint. The wrapped error carries the detail.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot begin,
	// commit or roll back.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrSessionNotFound = fmt.Errorf("%w: study session", ErrNotFound)
	ErrSessionExists   = fmt.Errorf("%w: study session", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
