package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowServiceFollowAndUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")
	env.user(t, "mia")

	require.NoError(t, env.followSvc.Follow(ctx, leo.ID, "mia"))

	following, err := env.followSvc.IsFollowing(ctx, leo.ID, "mia")
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, env.followSvc.Unfollow(ctx, leo.ID, "mia"))

	following, err = env.followSvc.IsFollowing(ctx, leo.ID, "mia")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowServiceIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")
	mia := env.user(t, "mia")

	// Repeated follows collapse into one edge.
	require.NoError(t, env.followSvc.Follow(ctx, leo.ID, "mia"))
	require.NoError(t, env.followSvc.Follow(ctx, leo.ID, "mia"))

	ids, err := env.follows.Following(ctx, leo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{mia.ID}, ids)

	// Unfollowing twice is equally harmless.
	require.NoError(t, env.followSvc.Unfollow(ctx, leo.ID, "mia"))
	require.NoError(t, env.followSvc.Unfollow(ctx, leo.ID, "mia"))
}

func TestFollowServiceSelfFollowIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")

	require.NoError(t, env.followSvc.Follow(ctx, leo.ID, "leo"))

	ids, err := env.follows.Following(ctx, leo.ID)
	require.NoError(t, err)
	assert.Empty(t, ids, "no edge is created for a self-follow")
}

func TestFollowServiceUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")

	assert.ErrorIs(t, env.followSvc.Follow(ctx, leo.ID, "nobody"), ErrUserNotFound)
	assert.ErrorIs(t, env.followSvc.Unfollow(ctx, leo.ID, "nobody"), ErrUserNotFound)

	_, err := env.followSvc.IsFollowing(ctx, leo.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
