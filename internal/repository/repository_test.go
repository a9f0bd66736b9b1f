package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yatube/yatube/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "yatube.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.UserModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()

	user := &domain.User{Username: username}
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func seedGroup(t *testing.T, db *gorm.DB, slug, title string) *domain.Group {
	t.Helper()

	group := &domain.Group{Slug: slug, Title: title}
	require.NoError(t, NewGormGroupRepository(db).Create(context.Background(), group))
	return group
}

func seedPost(t *testing.T, db *gorm.DB, authorID, text string, groupID *uint) *domain.Post {
	t.Helper()

	post, err := NewGormPostRepository(db).Create(context.Background(), authorID, text, groupID, "")
	require.NoError(t, err)
	return post
}
