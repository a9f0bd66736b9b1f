package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheServesCachedBytesWithinTTL(t *testing.T) {
	c := NewMemoryPageCache()
	ctx := context.Background()

	renders := 0
	render := func() ([]byte, error) {
		renders++
		return []byte("page-1"), nil
	}

	for i := 0; i < 5; i++ {
		data, err := c.GetOrRender(ctx, "feed:home:page:1", time.Minute, render)
		require.NoError(t, err)
		assert.Equal(t, []byte("page-1"), data)
	}

	assert.Equal(t, 1, renders, "render must run once per TTL window")
}

func TestMemoryCacheReRendersAfterExpiry(t *testing.T) {
	c := NewMemoryPageCache()
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	version := 0
	render := func() ([]byte, error) {
		version++
		return []byte{byte(version)}, nil
	}

	data, err := c.GetOrRender(ctx, "k", 20*time.Second, render)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)

	// Still fresh just before expiry.
	current = current.Add(19 * time.Second)
	data, err = c.GetOrRender(ctx, "k", 20*time.Second, render)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)

	// Stale once the TTL has elapsed.
	current = current.Add(2 * time.Second)
	data, err = c.GetOrRender(ctx, "k", 20*time.Second, render)
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, data)
}

func TestMemoryCacheDoesNotCacheRenderErrors(t *testing.T) {
	c := NewMemoryPageCache()
	ctx := context.Background()

	boom := errors.New("render failed")
	calls := 0

	_, err := c.GetOrRender(ctx, "k", time.Minute, func() ([]byte, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	data, err := c.GetOrRender(ctx, "k", time.Minute, func() ([]byte, error) {
		calls++
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, 2, calls)
}

func TestMemoryCacheKeysAreIndependent(t *testing.T) {
	c := NewMemoryPageCache()
	ctx := context.Background()

	a, err := c.GetOrRender(ctx, "feed:home:page:1", time.Minute, func() ([]byte, error) {
		return []byte("a"), nil
	})
	require.NoError(t, err)

	b, err := c.GetOrRender(ctx, "feed:home:page:2", time.Minute, func() ([]byte, error) {
		return []byte("b"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("a"), a)
	assert.Equal(t, []byte("b"), b)
}
