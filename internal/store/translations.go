// ABOUTME: Translation table mapping canonical English words to Hebrew renderings
// ABOUTME: One English word may carry several Hebrew renderings, kept in insertion order

package store

import (
	"context"
	"fmt"
)

// AddTranslation upserts an (english, hebrew) pair. The English word must
// resolve to a canonical form (ErrUnknownWord otherwise); the Hebrew text is
// stored as given. Re-adding an existing pair refreshes the suggestor and is
// otherwise a no-op.
func (s *SQLiteStore) AddTranslation(ctx context.Context, english, hebrew, suggestor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, known, err := s.canonicalize(ctx, english)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("adding translation for %q: %w", english, ErrUnknownWord)
	}

	query := `
		INSERT INTO translations (english, hebrew, suggestor) VALUES (?, ?, ?)
		ON CONFLICT(english, hebrew) DO UPDATE SET suggestor = excluded.suggestor
	`

	if _, err := s.db.ExecContext(ctx, query, canonical, hebrew, suggestor); err != nil {
		return fmt.Errorf("adding translation: %w", err)
	}

	s.logger.Debug("added translation", "english", canonical, "hebrew", hebrew)
	return nil
}

// Translate returns the Hebrew renderings of an English word in insertion
// order. An unknown English word and a known word with no translations both
// return an empty list; this call cannot distinguish them.
func (s *SQLiteStore) Translate(ctx context.Context, english string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, known, err := s.canonicalize(ctx, english)
	if err != nil {
		return nil, err
	}
	if !known {
		return []string{}, nil
	}

	query := `SELECT hebrew FROM translations WHERE english = ? ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, canonical)
	if err != nil {
		return nil, fmt.Errorf("translating %s: %w", canonical, err)
	}
	defer rows.Close()

	renderings := []string{}
	for rows.Next() {
		var hebrew string
		if err := rows.Scan(&hebrew); err != nil {
			return nil, fmt.Errorf("scanning translation: %w", err)
		}
		renderings = append(renderings, hebrew)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translations: %w", err)
	}

	return renderings, nil
}

// AllTranslations returns every stored pair, ordered by English word then
// insertion order.
func (s *SQLiteStore) AllTranslations(ctx context.Context) ([]Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT english, hebrew, suggestor FROM translations ORDER BY english, rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing translations: %w", err)
	}
	defer rows.Close()

	translations := []Translation{}
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.English, &t.Hebrew, &t.Suggestor); err != nil {
			return nil, fmt.Errorf("scanning translation: %w", err)
		}
		translations = append(translations, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translations: %w", err)
	}

	return translations, nil
}
