// ABOUTME: Canonical resolver mapping spelling variants to dictionary-approved forms
// ABOUTME: All word-keyed operations resolve through this table before touching other tables

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeWord prepares a raw word for canonical lookup: trim, NFC, lowercase.
// Hebrew arrives from browsers in mixed compositions (niqqud, precomposed
// forms), so normalization has to happen before the exact-match lookup.
// This is the only place casing is normalized; stored text keeps its casing.
func normalizeWord(word string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(word)))
}

// Canonicalize resolves a raw word to its canonical form. An unmapped word is
// not an error: known is false and the caller decides whether that is fatal.
func (s *SQLiteStore) Canonicalize(ctx context.Context, word string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canonicalize(ctx, word)
}

// canonicalize is the lock-free variant for use inside already-locked operations.
func (s *SQLiteStore) canonicalize(ctx context.Context, word string) (string, bool, error) {
	query := `SELECT canonical FROM canonical_words WHERE word = ?`

	var canonical string
	err := s.db.QueryRowContext(ctx, query, normalizeWord(word)).Scan(&canonical)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolving canonical form: %w", err)
	}

	return canonical, true, nil
}

// IsKnownWord reports whether a word resolves to a canonical form.
func (s *SQLiteStore) IsKnownWord(ctx context.Context, word string) (bool, error) {
	_, known, err := s.Canonicalize(ctx, word)
	return known, err
}

// DefineCanonical upserts word -> canonical, and the reflexive pair
// canonical -> canonical so the canonical form is always self-resolvable.
// Both writes happen in one transaction: a word mapped to an unresolvable
// canonical would silently corrupt every later lookup. Redefining a word
// overwrites the old target; no history is kept.
func (s *SQLiteStore) DefineCanonical(ctx context.Context, word, canonical string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	word = normalizeWord(word)
	canonical = normalizeWord(canonical)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO canonical_words (word, canonical) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET canonical = excluded.canonical
	`

	if _, err := tx.ExecContext(ctx, upsert, word, canonical); err != nil {
		return fmt.Errorf("mapping word to canonical: %w", err)
	}

	if _, err := tx.ExecContext(ctx, upsert, canonical, canonical); err != nil {
		return fmt.Errorf("mapping canonical to itself: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing canonical mapping: %w", err)
	}

	s.logger.Debug("defined canonical mapping", "word", word, "canonical", canonical)
	return nil
}

// ListCanonicalMappings returns every stored mapping, ordered by word.
func (s *SQLiteStore) ListCanonicalMappings(ctx context.Context) ([]CanonicalMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT word, canonical FROM canonical_words ORDER BY word`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing canonical mappings: %w", err)
	}
	defer rows.Close()

	mappings := []CanonicalMapping{}
	for rows.Next() {
		var m CanonicalMapping
		if err := rows.Scan(&m.Word, &m.Canonical); err != nil {
			return nil, fmt.Errorf("scanning canonical mapping: %w", err)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating canonical mappings: %w", err)
	}

	return mappings, nil
}
