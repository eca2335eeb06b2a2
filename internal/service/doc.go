// Package service contains the application use cases. StudyService turns one
// learner action into one state transition: it loads the session record,
// resolves the active deck, reconciles the state machine with that deck,
// applies the transition, persists the result and returns a Snapshot.
//
// The service depends on the store and deck loader through interfaces and
// treats enrichment and audio as best-effort extras that never corrupt the
// session state.
package service
