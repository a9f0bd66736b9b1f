package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/internal/domain"
)

func TestGroupServiceCreateDerivesSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "admin")

	group, err := env.groupSvc.Create(ctx, admin.ID, &domain.CreateGroupRequest{
		Title:       "  Big Cats  ",
		Description: " lions ",
	})
	require.NoError(t, err)
	assert.Equal(t, "big-cats", group.Slug)
	assert.Equal(t, "Big Cats", group.Title)
	assert.Equal(t, "lions", group.Description)
	assert.NotZero(t, group.ID)
}

func TestGroupServiceCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "admin")

	var verr *ValidationError
	_, err := env.groupSvc.Create(ctx, admin.ID, &domain.CreateGroupRequest{Title: "   "})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
}

func TestGroupServiceCreateDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "admin")

	_, err := env.groupSvc.Create(ctx, admin.ID, &domain.CreateGroupRequest{Title: "Cats"})
	require.NoError(t, err)

	_, err = env.groupSvc.Create(ctx, admin.ID, &domain.CreateGroupRequest{Title: "Cats"})
	assert.ErrorIs(t, err, ErrGroupExists)
}

func TestGroupServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "admin")
	env.group(t, "cats", "Cats")

	title := "All Cats"
	group, err := env.groupSvc.Update(ctx, admin.ID, "cats", &domain.UpdateGroupRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "All Cats", group.Title)
	assert.Equal(t, "cats", group.Slug, "slug never changes on update")

	desc := "everything feline"
	group, err = env.groupSvc.Update(ctx, admin.ID, "cats", &domain.UpdateGroupRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "All Cats", group.Title)
	assert.Equal(t, "everything feline", group.Description)

	_, err = env.groupSvc.Update(ctx, admin.ID, "dogs", &domain.UpdateGroupRequest{Title: &title})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.user(t, "admin")
	env.group(t, "cats", "Cats")

	require.NoError(t, env.groupSvc.Delete(ctx, admin.ID, "cats"))
	assert.ErrorIs(t, env.groupSvc.Delete(ctx, admin.ID, "cats"), ErrGroupNotFound)
}

func TestGroupServiceList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.group(t, "zebras", "Zebras")
	env.group(t, "ants", "Ants")

	groups, err := env.groupSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Ants", groups[0].Title)
}
