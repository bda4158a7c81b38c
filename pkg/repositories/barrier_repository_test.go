package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/testhelpers"
)

func TestBarrierRepository_EmptyList(t *testing.T) {
	repo := NewBarrierRepository(testhelpers.NewStateDB(t))

	ids, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestBarrierRepository_RecordIsIdempotentAndOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewBarrierRepository(testhelpers.NewStateDB(t))

	for _, id := range []string{"Q-3", "Q-1", "Q-3", "Q-2", "Q-1"} {
		require.NoError(t, repo.Record(ctx, id))
	}

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q-3", "Q-1", "Q-2"}, ids)
}

func TestBarrierRepository_Contains(t *testing.T) {
	ctx := context.Background()
	repo := NewBarrierRepository(testhelpers.NewStateDB(t))
	require.NoError(t, repo.Record(ctx, "Q-1"))

	ok, err := repo.Contains(ctx, "Q-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Contains(ctx, "Q-9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBarrierRepository_Set(t *testing.T) {
	ctx := context.Background()
	repo := NewBarrierRepository(testhelpers.NewStateDB(t))
	require.NoError(t, repo.Record(ctx, "a"))
	require.NoError(t, repo.Record(ctx, "b"))

	set, err := repo.Set(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, set)
}

func TestBarrierRepository_RejectsBlankID(t *testing.T) {
	ctx := context.Background()
	repo := NewBarrierRepository(testhelpers.NewStateDB(t))

	assert.ErrorIs(t, repo.Record(ctx, " "), apperrors.ErrMissingQuestionID)

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
