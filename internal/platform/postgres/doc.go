// Package postgres provides the PostgreSQL implementation of
// store.SessionStore together with connection setup and embedded goose
// migrations. Sessions are stored as one row each, with the deck upload,
// unit selection and state machine kept in JSONB columns.
package postgres
