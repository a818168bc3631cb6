// ABOUTME: Tests for the translation table
// ABOUTME: Covers upsert idempotency, multiple renderings in insertion order, unknown words

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations_AddUnknownWord(t *testing.T) {
	store := setupTestStore(t)

	err := store.AddTranslation(context.Background(), "unknownword", "כלב", "")
	require.ErrorIs(t, err, ErrUnknownWord)
}

func TestTranslations_MultipleRenderingsInsertionOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "dog", "dog"))
	require.NoError(t, store.AddTranslation(ctx, "dog", "כלב", ""))
	require.NoError(t, store.AddTranslation(ctx, "dog", "כלבה", ""))

	renderings, err := store.Translate(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"כלב", "כלבה"}, renderings, "both present, insertion order, no overwrite")
}

func TestTranslations_UpsertIdempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "dog", "dog"))
	require.NoError(t, store.AddTranslation(ctx, "dog", "כלב", "dana"))
	require.NoError(t, store.AddTranslation(ctx, "dog", "כלב", "yossi"))

	renderings, err := store.Translate(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"כלב"}, renderings, "no duplicate entry, no error")

	translations, err := store.AllTranslations(ctx)
	require.NoError(t, err)
	require.Len(t, translations, 1)
	assert.Equal(t, "yossi", translations[0].Suggestor, "re-upsert refreshes the suggestor")
}

func TestTranslations_VariantResolvesToCanonical(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "doggo", "dog"))
	require.NoError(t, store.AddTranslation(ctx, "doggo", "כלב", ""))

	// Both the variant and the canonical spelling find the translation
	renderings, err := store.Translate(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"כלב"}, renderings)

	renderings, err = store.Translate(ctx, "doggo")
	require.NoError(t, err)
	assert.Equal(t, []string{"כלב"}, renderings)
}

func TestTranslations_UnknownWordTranslatesToEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Unknown word: empty list, not an error
	renderings, err := store.Translate(ctx, "unknownword")
	require.NoError(t, err)
	assert.Empty(t, renderings)

	// Known word with no translations: same shape
	require.NoError(t, store.DefineCanonical(ctx, "cat", "cat"))
	renderings, err = store.Translate(ctx, "cat")
	require.NoError(t, err)
	assert.Empty(t, renderings)
}

func TestTranslations_ListAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "dog", "dog"))
	require.NoError(t, store.DefineCanonical(ctx, "cat", "cat"))
	require.NoError(t, store.AddTranslation(ctx, "dog", "כלב", ""))
	require.NoError(t, store.AddTranslation(ctx, "cat", "חתול", ""))

	translations, err := store.AllTranslations(ctx)
	require.NoError(t, err)
	require.Len(t, translations, 2)
	assert.Equal(t, "cat", translations[0].English)
	assert.Equal(t, "dog", translations[1].English)
}
