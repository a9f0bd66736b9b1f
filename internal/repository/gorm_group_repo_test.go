package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/internal/domain"
)

func TestGroupRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormGroupRepository(db)
	ctx := context.Background()

	group := &domain.Group{Slug: "cats", Title: "Cats", Description: "all about cats"}
	require.NoError(t, repo.Create(ctx, group))
	assert.NotZero(t, group.ID)

	got, err := repo.GetBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats", got.Title)
	assert.Equal(t, "all about cats", got.Description)

	_, err = repo.GetBySlug(ctx, "dogs")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupRepositoryDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Group{Slug: "cats", Title: "Cats"}))

	err := repo.Create(ctx, &domain.Group{Slug: "cats", Title: "Other Cats"})
	assert.ErrorIs(t, err, ErrGroupExists)
}

func TestGroupRepositoryUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormGroupRepository(db)
	ctx := context.Background()

	group := seedGroup(t, db, "cats", "Cats")
	group.Title = "Big Cats"
	group.Description = "lions and tigers"
	require.NoError(t, repo.Update(ctx, group))

	got, err := repo.GetBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, "Big Cats", got.Title)
	assert.Equal(t, "lions and tigers", got.Description)

	missing := &domain.Group{ID: 9999, Title: "x"}
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrGroupNotFound)
}

func TestGroupRepositoryDeleteKeepsPosts(t *testing.T) {
	db := newTestDB(t)
	groups := NewGormGroupRepository(db)
	posts := NewGormPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "leo")
	group := seedGroup(t, db, "cats", "Cats")
	post := seedPost(t, db, author.ID, "still here", &group.ID)

	require.NoError(t, groups.Delete(ctx, "cats"))

	_, err := groups.GetBySlug(ctx, "cats")
	assert.ErrorIs(t, err, ErrGroupNotFound)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Group, "post must survive with its group reference cleared")

	assert.ErrorIs(t, groups.Delete(ctx, "cats"), ErrGroupNotFound)
}

func TestGroupRepositoryListOrderedByTitle(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormGroupRepository(db)
	ctx := context.Background()

	seedGroup(t, db, "zebras", "Zebras")
	seedGroup(t, db, "ants", "Ants")

	groups, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Ants", groups[0].Title)
	assert.Equal(t, "Zebras", groups[1].Title)
}
