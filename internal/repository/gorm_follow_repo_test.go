package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepositoryFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	leo := seedUser(t, db, "leo")
	mia := seedUser(t, db, "mia")

	require.NoError(t, repo.Follow(ctx, leo.ID, mia.ID))

	following, err := repo.IsFollowing(ctx, leo.ID, mia.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Direction matters.
	reverse, err := repo.IsFollowing(ctx, mia.ID, leo.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, repo.Unfollow(ctx, leo.ID, mia.ID))

	following, err = repo.IsFollowing(ctx, leo.ID, mia.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowRepositoryDuplicateFollowHitsUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	leo := seedUser(t, db, "leo")
	mia := seedUser(t, db, "mia")

	require.NoError(t, repo.Follow(ctx, leo.ID, mia.ID))
	assert.ErrorIs(t, repo.Follow(ctx, leo.ID, mia.ID), ErrAlreadyFollowing)

	ids, err := repo.Following(ctx, leo.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestFollowRepositoryUnfollowMissingEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	leo := seedUser(t, db, "leo")
	mia := seedUser(t, db, "mia")

	assert.ErrorIs(t, repo.Unfollow(ctx, leo.ID, mia.ID), ErrFollowNotFound)
}

func TestFollowRepositoryFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	ctx := context.Background()

	leo := seedUser(t, db, "leo")
	mia := seedUser(t, db, "mia")
	noa := seedUser(t, db, "noa")

	require.NoError(t, repo.Follow(ctx, leo.ID, mia.ID))
	require.NoError(t, repo.Follow(ctx, leo.ID, noa.ID))

	ids, err := repo.Following(ctx, leo.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mia.ID, noa.ID}, ids)

	none, err := repo.Following(ctx, mia.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
