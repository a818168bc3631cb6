// ABOUTME: Tests for the participant registry
// ABOUTME: Covers add, list ordering, and the duplicate-name error

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipants_AddAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddParticipant(ctx, "Yossi"))
	require.NoError(t, store.AddParticipant(ctx, "Dana"))

	names, err := store.Participants(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dana", "Yossi"}, names)
}

func TestParticipants_Duplicate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddParticipant(ctx, "Dana"))

	err := store.AddParticipant(ctx, "Dana")
	require.ErrorIs(t, err, ErrDuplicateParticipant)
}

func TestParticipants_ListEmpty(t *testing.T) {
	store := setupTestStore(t)

	names, err := store.Participants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
