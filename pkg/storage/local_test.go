package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLocalStorageWriteReadDelete(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	content := "png bytes"
	require.NoError(t, s.Write(ctx, "posts/a.png", strings.NewReader(content), int64(len(content)), "image/png"))

	exists, err := s.Exists(ctx, "posts/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Read(ctx, "posts/a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, string(data))

	require.NoError(t, s.Delete(ctx, "posts/a.png"))

	exists, err = s.Exists(ctx, "posts/a.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, "posts/a.png"))
}

func TestLocalStorageOverwrite(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "k", strings.NewReader("v1"), 2, "text/plain"))
	require.NoError(t, s.Write(ctx, "k", strings.NewReader("v2"), 2, "text/plain"))

	rc, err := s.Read(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestLocalStorageRejectsPathTraversal(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	err := s.Write(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	_, err = s.Read(ctx, "../../etc/passwd")
	assert.Error(t, err)

	_, err = s.Exists(ctx, "..")
	assert.Error(t, err)
}

func TestLocalStorageGetURL(t *testing.T) {
	s := newLocal(t)

	url, err := s.GetURL(context.Background(), "posts/a.png", 0)
	require.NoError(t, err)
	assert.Equal(t, "/media/posts/a.png", url)
}
