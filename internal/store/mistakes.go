// ABOUTME: Mistake ledger with per-person, per-canonical-word occurrence counters
// ABOUTME: Reports resolve through the canonical table and upsert in one statement

package store

import (
	"context"
	"fmt"
)

// ReportMistake records that a person misspoke a word. The raw word must
// resolve to a canonical form (ErrUnknownWord otherwise). The insert and the
// increment are a single conditional statement so concurrent reports of the
// same pair never lose an update. Returns the post-increment record.
func (s *SQLiteStore) ReportMistake(ctx context.Context, name, mistake string) (*MistakeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, known, err := s.canonicalize(ctx, mistake)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("reporting mistake %q: %w", mistake, ErrUnknownWord)
	}

	query := `
		INSERT INTO mistakes (name, mistake, count) VALUES (?, ?, 1)
		ON CONFLICT(name, mistake) DO UPDATE SET count = count + 1
		RETURNING count
	`

	record := &MistakeRecord{Name: name, Mistake: canonical}
	if err := s.db.QueryRowContext(ctx, query, name, canonical).Scan(&record.Count); err != nil {
		return nil, fmt.Errorf("recording mistake: %w", err)
	}

	s.logger.Debug("reported mistake", "name", name, "mistake", canonical, "count", record.Count)
	return record, nil
}

// AllMistakes returns every person's mistakes, grouped by person and ordered
// by person name; each person's mistakes are ordered by canonical word.
func (s *SQLiteStore) AllMistakes(ctx context.Context) ([]PersonMistakes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT name, mistake, count FROM mistakes ORDER BY name, mistake`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing mistakes: %w", err)
	}
	defer rows.Close()

	grouped := []PersonMistakes{}
	for rows.Next() {
		var name string
		var cm CountedMistake
		if err := rows.Scan(&name, &cm.Mistake, &cm.Count); err != nil {
			return nil, fmt.Errorf("scanning mistake: %w", err)
		}
		if len(grouped) == 0 || grouped[len(grouped)-1].Name != name {
			grouped = append(grouped, PersonMistakes{Name: name})
		}
		last := &grouped[len(grouped)-1]
		last.Mistakes = append(last.Mistakes, cm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mistakes: %w", err)
	}

	return grouped, nil
}

// MistakesFor returns one person's mistakes, ordered by canonical word.
// A person with no recorded mistakes gets an empty list, not an error.
func (s *SQLiteStore) MistakesFor(ctx context.Context, name string) (*PersonMistakes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT mistake, count FROM mistakes WHERE name = ? ORDER BY mistake`

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("listing mistakes for %s: %w", name, err)
	}
	defer rows.Close()

	pm := &PersonMistakes{Name: name, Mistakes: []CountedMistake{}}
	for rows.Next() {
		var cm CountedMistake
		if err := rows.Scan(&cm.Mistake, &cm.Count); err != nil {
			return nil, fmt.Errorf("scanning mistake: %w", err)
		}
		pm.Mistakes = append(pm.Mistakes, cm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mistakes: %w", err)
	}

	return pm, nil
}

// MistakenWords returns the distinct canonical words anyone has misspoken.
func (s *SQLiteStore) MistakenWords(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT DISTINCT mistake FROM mistakes ORDER BY mistake`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing mistaken words: %w", err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scanning mistaken word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mistaken words: %w", err)
	}

	return words, nil
}
