package service

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/repository"
)

// stubStorage is an in-memory blob store recording writes and deletes.
type stubStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *stubStorage) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.NopCloser(nil), nil
}

func (s *stubStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *stubStorage) GetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://media.test/" + key, nil
}

func (s *stubStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// testEnv wires real repositories over a throwaway sqlite file.
type testEnv struct {
	db       *gorm.DB
	blobs    *stubStorage
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
	users    repository.UserRepository

	feedSvc   FeedService
	postSvc   PostService
	followSvc FollowService
	groupSvc  GroupService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:       db,
		blobs:    newStubStorage(),
		posts:    repository.NewGormPostRepository(db),
		groups:   repository.NewGormGroupRepository(db),
		comments: repository.NewGormCommentRepository(db),
		follows:  repository.NewGormFollowRepository(db),
		users:    repository.NewGormUserRepository(db),
	}
	env.feedSvc = NewFeedService(env.posts, env.groups, env.users, env.follows)
	env.postSvc = NewPostService(env.posts, env.groups, env.comments, env.blobs)
	env.followSvc = NewFollowService(env.follows, env.users)
	env.groupSvc = NewGroupService(env.groups)
	return env
}

func (e *testEnv) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) group(t *testing.T, slug, title string) *domain.Group {
	t.Helper()
	g := &domain.Group{Slug: slug, Title: title}
	require.NoError(t, e.groups.Create(context.Background(), g))
	return g
}

func (e *testEnv) post(t *testing.T, authorID, text string) *domain.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), authorID, text, nil, "")
	require.NoError(t, err)
	return p
}
