// Package store provides persistent storage for shoresh using SQLite.
//
// # Architecture
//
// The package is the storage gateway for the whole service: it owns the single
// database connection and exposes every operation as an atomic unit behind the
// Gateway interface. A mutex covers each operation for its full duration, so
// operations execute as if in some fixed serial order with no statement
// interleaving.
//
// Every word-keyed operation resolves its input through the canonical table
// first, so mistake counts and translations accumulate against one stable key
// instead of fragmenting across spelling variants.
//
// # Data Models
//
//   - CanonicalMapping: spelling variant -> dictionary-approved form; every
//     canonical form also maps to itself
//   - MistakeRecord / PersonMistakes: per-person occurrence counters keyed by
//     canonical word
//   - Translation: canonical English -> Hebrew rendering (many per word)
//   - MistakeSuggestion / TranslationSuggestion: pending community proposals
//   - ArchivedMistakeSuggestion: immutable audit row written when a mistake
//     suggestion is resolved
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode and a single connection:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Schema is created idempotently at startup; column additions for databases
// from earlier versions are applied in runMigrations.
//
// # Error Handling
//
// Sentinel errors, detected with errors.Is:
//
//   - ErrUnknownWord: operation needed a canonical form and resolution failed
//   - ErrNotFound: suggestion id does not exist
//   - ErrDuplicateParticipant: participant name already registered
//
// The one soft case: Translate on an unknown word returns an empty list
// rather than ErrUnknownWord, and is indistinguishable from a known word with
// no translations.
package store
