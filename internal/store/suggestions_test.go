// ABOUTME: Tests for the suggestion workflow
// ABOUTME: Covers staging, listing, atomic discard-with-archive, and NotFound on re-discard

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestions_SubmitMistakeReturnsFreshID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id1, err := store.SuggestMistake(ctx, "Dana", "gadol", "during the lesson", "host-a")
	require.NoError(t, err)

	id2, err := store.SuggestMistake(ctx, "Yossi", "katan", "", "host-b")
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func TestSuggestions_SubmitSkipsValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Suggestions may reference unknown words; validation is deferred to review
	_, err := store.SuggestMistake(ctx, "Dana", "notaword", "", "host-a")
	require.NoError(t, err)

	_, err = store.SuggestTranslation(ctx, "notaword", "כלב", "host-a")
	require.NoError(t, err)
}

func TestSuggestions_ListPendingMistakes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.SuggestMistake(ctx, "Dana", "gadol", "ctx", "host-a")
	require.NoError(t, err)

	pending, err := store.MistakeSuggestions(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Equal(t, "Dana", pending[0].Name)
	assert.Equal(t, "gadol", pending[0].Mistake)
	assert.Equal(t, "ctx", pending[0].Context)
	assert.Equal(t, "host-a", pending[0].Reporter)
}

func TestSuggestions_DiscardMistakeArchives(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.SuggestMistake(ctx, "Dana", "gadol", "ctx", "host-a")
	require.NoError(t, err)

	err = store.DiscardMistakeSuggestion(ctx, id, true)
	require.NoError(t, err)

	pending, err := store.MistakeSuggestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	archived, err := store.ArchivedMistakeSuggestions(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1, "resolution writes exactly one archive row")
	assert.Equal(t, "Dana", archived[0].Name)
	assert.Equal(t, "gadol", archived[0].Mistake)
	assert.Equal(t, "ctx", archived[0].Context)
	assert.Equal(t, "host-a", archived[0].Reporter)
	assert.True(t, archived[0].Accepted)
	assert.NotEmpty(t, archived[0].ID)
	assert.False(t, archived[0].ResolvedAt.IsZero())
}

func TestSuggestions_DiscardMistakeRejectedFlag(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.SuggestMistake(ctx, "Dana", "gadol", "", "host-a")
	require.NoError(t, err)

	require.NoError(t, store.DiscardMistakeSuggestion(ctx, id, false))

	archived, err := store.ArchivedMistakeSuggestions(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.False(t, archived[0].Accepted)
}

func TestSuggestions_DiscardMistakeTwice(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.SuggestMistake(ctx, "Dana", "gadol", "", "host-a")
	require.NoError(t, err)

	require.NoError(t, store.DiscardMistakeSuggestion(ctx, id, true))

	err = store.DiscardMistakeSuggestion(ctx, id, true)
	require.ErrorIs(t, err, ErrNotFound)

	// The double discard must not produce a second archive row
	archived, err := store.ArchivedMistakeSuggestions(ctx)
	require.NoError(t, err)
	assert.Len(t, archived, 1)
}

func TestSuggestions_DiscardMistakeUnknownID(t *testing.T) {
	store := setupTestStore(t)

	err := store.DiscardMistakeSuggestion(context.Background(), 9999, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestions_TranslationLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.SuggestTranslation(ctx, "dog", "כלב", "host-a")
	require.NoError(t, err)

	pending, err := store.TranslationSuggestions(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Equal(t, "dog", pending[0].English)
	assert.Equal(t, "כלב", pending[0].Hebrew)
	assert.Equal(t, "host-a", pending[0].Suggestor)

	require.NoError(t, store.DiscardTranslationSuggestion(ctx, id))

	pending, err = store.TranslationSuggestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSuggestions_DiscardTranslationTwice(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.SuggestTranslation(ctx, "dog", "כלב", "host-a")
	require.NoError(t, err)

	require.NoError(t, store.DiscardTranslationSuggestion(ctx, id))

	err = store.DiscardTranslationSuggestion(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestions_IDsNotReusedAfterDiscard(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id1, err := store.SuggestMistake(ctx, "Dana", "gadol", "", "host-a")
	require.NoError(t, err)
	require.NoError(t, store.DiscardMistakeSuggestion(ctx, id1, false))

	id2, err := store.SuggestMistake(ctx, "Dana", "katan", "", "host-a")
	require.NoError(t, err)
	assert.Greater(t, id2, id1, "AUTOINCREMENT must not reuse discarded ids")
}
