// Package domain contains the vocabulary entities shared by the deck loader,
// the session state machine and the persistence layer: word entries, units,
// decks, languages, enrichment results and the serializable study session.
// It has no knowledge of HTTP, storage engines or external services.
package domain
