// ABOUTME: Participant registry - the flat list of people who can be charged with mistakes
// ABOUTME: Participants are created explicitly and never deleted or renamed

package store

import (
	"context"
	"fmt"
)

// Participants returns all participant names, ordered by name.
func (s *SQLiteStore) Participants(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT name FROM participants ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}

	return names, nil
}

// AddParticipant registers a new participant. Returns ErrDuplicateParticipant
// if the name is already registered.
func (s *SQLiteStore) AddParticipant(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO participants (name) VALUES (?)`

	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("participant %q: %w", name, ErrDuplicateParticipant)
		}
		return fmt.Errorf("inserting participant: %w", err)
	}

	s.logger.Debug("added participant", "name", name)
	return nil
}
