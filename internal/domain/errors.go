// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrUnknownLanguage is returned for a language code outside the registry.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrEmptySelection is returned when no unit is selected, leaving
	// nothing to study.
	ErrEmptySelection = errors.New("no units selected")

	// ErrEmptyDeck is returned when an operation needs at least one entry.
	ErrEmptyDeck = errors.New("deck is empty")
)
