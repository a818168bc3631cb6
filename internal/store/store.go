// ABOUTME: Gateway interface and data types for shoresh persistence
// ABOUTME: Defines vocabulary entities, sentinel errors, and the storage contract

package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownWord is returned when an operation needs a canonical form and the
// word has no canonical mapping.
var ErrUnknownWord = errors.New("word has no canonical form")

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateParticipant is returned when adding a participant that already exists.
var ErrDuplicateParticipant = errors.New("participant already exists")

// CanonicalMapping maps a spelling variant to its dictionary-approved form.
// Every canonical value also maps to itself, so canonical forms always resolve.
type CanonicalMapping struct {
	Word      string
	Canonical string
}

// CountedMistake is one canonical word and how often a person misspoke it.
type CountedMistake struct {
	Mistake string
	Count   int
}

// PersonMistakes groups all of one person's counted mistakes.
type PersonMistakes struct {
	Name     string
	Mistakes []CountedMistake
}

// MistakeRecord is the ledger row returned after reporting a mistake.
type MistakeRecord struct {
	Name    string
	Mistake string // canonical form
	Count   int
}

// Translation is one English-to-Hebrew rendering. A canonical English word may
// have several Hebrew renderings.
type Translation struct {
	English   string // canonical form
	Hebrew    string
	Suggestor string
}

// MistakeSuggestion is a community-proposed mistake awaiting review.
type MistakeSuggestion struct {
	ID       int64
	Name     string
	Mistake  string
	Context  string
	Reporter string
}

// TranslationSuggestion is a community-proposed translation awaiting review.
type TranslationSuggestion struct {
	ID        int64
	English   string
	Hebrew    string
	Suggestor string
}

// ArchivedMistakeSuggestion is the immutable audit row written when a mistake
// suggestion is resolved. Accepted is an annotation for the reviewer; nothing
// acts on it automatically.
type ArchivedMistakeSuggestion struct {
	ID         string
	Name       string
	Mistake    string
	Context    string
	Reporter   string
	Accepted   bool
	ResolvedAt time.Time
}

// Gateway defines the storage operations exposed to the request layer.
// Every method is atomic with respect to every other method.
type Gateway interface {
	// Canonical resolver
	Canonicalize(ctx context.Context, word string) (canonical string, known bool, err error)
	IsKnownWord(ctx context.Context, word string) (bool, error)
	DefineCanonical(ctx context.Context, word, canonical string) error
	ListCanonicalMappings(ctx context.Context) ([]CanonicalMapping, error)

	// Mistake ledger
	ReportMistake(ctx context.Context, name, mistake string) (*MistakeRecord, error)
	AllMistakes(ctx context.Context) ([]PersonMistakes, error)
	MistakesFor(ctx context.Context, name string) (*PersonMistakes, error)
	MistakenWords(ctx context.Context) ([]string, error)

	// Translation table
	AddTranslation(ctx context.Context, english, hebrew, suggestor string) error
	Translate(ctx context.Context, english string) ([]string, error)
	AllTranslations(ctx context.Context) ([]Translation, error)

	// Suggestion workflow
	SuggestMistake(ctx context.Context, name, mistake, context_, reporter string) (int64, error)
	MistakeSuggestions(ctx context.Context) ([]MistakeSuggestion, error)
	DiscardMistakeSuggestion(ctx context.Context, id int64, accepted bool) error
	ArchivedMistakeSuggestions(ctx context.Context) ([]ArchivedMistakeSuggestion, error)
	SuggestTranslation(ctx context.Context, english, hebrew, suggestor string) (int64, error)
	TranslationSuggestions(ctx context.Context) ([]TranslationSuggestion, error)
	DiscardTranslationSuggestion(ctx context.Context, id int64) error

	// Participant registry
	Participants(ctx context.Context) ([]string, error)
	AddParticipant(ctx context.Context, name string) error

	// Close releases the underlying connection.
	Close() error
}
