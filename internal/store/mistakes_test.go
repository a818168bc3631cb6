// ABOUTME: Tests for the mistake ledger
// ABOUTME: Covers increment-or-create, canonical accumulation, grouping, and the lost-update race

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMistakes_ReportUnknownWord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.ReportMistake(ctx, "Dana", "unknownword")
	require.ErrorIs(t, err, ErrUnknownWord)
}

func TestMistakes_ReportAndIncrement(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "gadol", "גדול"))

	record, err := store.ReportMistake(ctx, "Dana", "gadol")
	require.NoError(t, err)
	assert.Equal(t, "Dana", record.Name)
	assert.Equal(t, "גדול", record.Mistake)
	assert.Equal(t, 1, record.Count)

	record, err = store.ReportMistake(ctx, "Dana", "gadol")
	require.NoError(t, err)
	assert.Equal(t, 2, record.Count)
}

func TestMistakes_VariantsAccumulateOnCanonical(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "gadol", "גדול"))
	require.NoError(t, store.DefineCanonical(ctx, "gadoll", "גדול"))

	_, err := store.ReportMistake(ctx, "Dana", "gadol")
	require.NoError(t, err)
	_, err = store.ReportMistake(ctx, "Dana", "gadoll")
	require.NoError(t, err)
	_, err = store.ReportMistake(ctx, "Dana", "גדול")
	require.NoError(t, err)

	pm, err := store.MistakesFor(ctx, "Dana")
	require.NoError(t, err)
	require.Len(t, pm.Mistakes, 1, "all spelling variants should share one ledger entry")
	assert.Equal(t, "גדול", pm.Mistakes[0].Mistake)
	assert.Equal(t, 3, pm.Mistakes[0].Count)
}

func TestMistakes_AllGroupedByPerson(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "gadol", "גדול"))
	require.NoError(t, store.DefineCanonical(ctx, "katan", "קטן"))

	_, err := store.ReportMistake(ctx, "Yossi", "gadol")
	require.NoError(t, err)
	_, err = store.ReportMistake(ctx, "Dana", "gadol")
	require.NoError(t, err)
	_, err = store.ReportMistake(ctx, "Dana", "katan")
	require.NoError(t, err)

	all, err := store.AllMistakes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Ordered by person name
	assert.Equal(t, "Dana", all[0].Name)
	assert.Len(t, all[0].Mistakes, 2)
	assert.Equal(t, "Yossi", all[1].Name)
	assert.Len(t, all[1].Mistakes, 1)
}

func TestMistakes_ForPersonWithNone(t *testing.T) {
	store := setupTestStore(t)

	pm, err := store.MistakesFor(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Equal(t, "Nobody", pm.Name)
	assert.Empty(t, pm.Mistakes, "person with no mistakes gets an empty list, not an error")
}

func TestMistakes_MistakenWordsDistinct(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "gadol", "גדול"))

	_, err := store.ReportMistake(ctx, "Dana", "gadol")
	require.NoError(t, err)
	_, err = store.ReportMistake(ctx, "Yossi", "gadol")
	require.NoError(t, err)

	words, err := store.MistakenWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"גדול"}, words)
}

func TestMistakes_ConcurrentReportsLoseNothing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DefineCanonical(ctx, "gadol", "גדול"))

	const reports = 50
	var wg sync.WaitGroup
	errs := make(chan error, reports)

	for i := 0; i < reports; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ReportMistake(ctx, "Dana", "gadol")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	pm, err := store.MistakesFor(ctx, "Dana")
	require.NoError(t, err)
	require.Len(t, pm.Mistakes, 1)
	assert.Equal(t, reports, pm.Mistakes[0].Count, "no increment may be lost")
}
