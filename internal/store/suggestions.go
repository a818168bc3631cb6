// ABOUTME: Suggestion workflow for community-proposed mistakes and translations
// ABOUTME: Pending rows move to resolved atomically; mistake resolutions are archived

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SuggestMistake stages a mistake suggestion and returns its generated id.
// No canonicalization or validation happens here; suggestions may reference
// unknown words and are validated when someone acts on them.
func (s *SQLiteStore) SuggestMistake(ctx context.Context, name, mistake, context_, reporter string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO mistake_suggestions (name, mistake, context, reporter)
		VALUES (?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query, name, mistake, context_, reporter)
	if err != nil {
		return 0, fmt.Errorf("inserting mistake suggestion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading suggestion id: %w", err)
	}

	s.logger.Debug("staged mistake suggestion", "id", id, "name", name, "reporter", reporter)
	return id, nil
}

// MistakeSuggestions returns all pending mistake suggestions with their ids.
func (s *SQLiteStore) MistakeSuggestions(ctx context.Context) ([]MistakeSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, name, mistake, context, reporter FROM mistake_suggestions ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing mistake suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []MistakeSuggestion{}
	for rows.Next() {
		var ms MistakeSuggestion
		if err := rows.Scan(&ms.ID, &ms.Name, &ms.Mistake, &ms.Context, &ms.Reporter); err != nil {
			return nil, fmt.Errorf("scanning mistake suggestion: %w", err)
		}
		suggestions = append(suggestions, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mistake suggestions: %w", err)
	}

	return suggestions, nil
}

// DiscardMistakeSuggestion resolves a pending mistake suggestion: the pending
// row is deleted and exactly one archive row is written carrying the accepted
// flag. Read, delete, and archive-insert share one transaction so a crash can
// never lose the suggestion between steps. The flag is an annotation only;
// acceptance does not promote anything into the mistake ledger.
// Returns ErrNotFound if the id does not exist.
func (s *SQLiteStore) DiscardMistakeSuggestion(ctx context.Context, id int64, accepted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var ms MistakeSuggestion
	err = tx.QueryRowContext(ctx,
		`SELECT name, mistake, context, reporter FROM mistake_suggestions WHERE id = ?`, id,
	).Scan(&ms.Name, &ms.Mistake, &ms.Context, &ms.Reporter)
	if err == sql.ErrNoRows {
		return fmt.Errorf("mistake suggestion %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("reading mistake suggestion: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM mistake_suggestions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting mistake suggestion: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mistake_suggestion_archive (id, name, mistake, context, reporter, accepted, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		ms.Name,
		ms.Mistake,
		ms.Context,
		ms.Reporter,
		accepted,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("archiving mistake suggestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing suggestion resolution: %w", err)
	}

	s.logger.Debug("resolved mistake suggestion", "id", id, "accepted", accepted)
	return nil
}

// ArchivedMistakeSuggestions returns the audit trail of resolved mistake
// suggestions, most recent first.
func (s *SQLiteStore) ArchivedMistakeSuggestions(ctx context.Context) ([]ArchivedMistakeSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, name, mistake, context, reporter, accepted, resolved_at
		FROM mistake_suggestion_archive
		ORDER BY resolved_at DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing archived suggestions: %w", err)
	}
	defer rows.Close()

	archived := []ArchivedMistakeSuggestion{}
	for rows.Next() {
		var a ArchivedMistakeSuggestion
		var resolvedAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Mistake, &a.Context, &a.Reporter, &a.Accepted, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scanning archived suggestion: %w", err)
		}
		a.ResolvedAt, err = time.Parse(time.RFC3339, resolvedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing resolved_at: %w", err)
		}
		archived = append(archived, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archived suggestions: %w", err)
	}

	return archived, nil
}

// SuggestTranslation stages a translation suggestion and returns its
// generated id. As with mistakes, validation is deferred to acceptance.
func (s *SQLiteStore) SuggestTranslation(ctx context.Context, english, hebrew, suggestor string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO translation_suggestions (english, hebrew, suggestor)
		VALUES (?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query, english, hebrew, suggestor)
	if err != nil {
		return 0, fmt.Errorf("inserting translation suggestion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading suggestion id: %w", err)
	}

	s.logger.Debug("staged translation suggestion", "id", id, "english", english, "suggestor", suggestor)
	return id, nil
}

// TranslationSuggestions returns all pending translation suggestions with their ids.
func (s *SQLiteStore) TranslationSuggestions(ctx context.Context) ([]TranslationSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, english, hebrew, suggestor FROM translation_suggestions ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing translation suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []TranslationSuggestion{}
	for rows.Next() {
		var ts TranslationSuggestion
		if err := rows.Scan(&ts.ID, &ts.English, &ts.Hebrew, &ts.Suggestor); err != nil {
			return nil, fmt.Errorf("scanning translation suggestion: %w", err)
		}
		suggestions = append(suggestions, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translation suggestions: %w", err)
	}

	return suggestions, nil
}

// DiscardTranslationSuggestion deletes a pending translation suggestion.
// Translation resolutions are not archived. Returns ErrNotFound if the id
// does not exist.
func (s *SQLiteStore) DiscardTranslationSuggestion(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_suggestions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting translation suggestion: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("translation suggestion %d: %w", id, ErrNotFound)
	}

	s.logger.Debug("discarded translation suggestion", "id", id)
	return nil
}
