package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryPageCache is an in-memory implementation of PageCache. Suitable for
// single-instance deployments without Redis, and for tests.
type MemoryPageCache struct {
	entries map[string]memoryEntry
	mu      sync.Mutex
	now     func() time.Time
}

// NewMemoryPageCache creates a new in-memory page cache.
func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// GetOrRender returns the cached bytes for key if the entry is still within
// its TTL, otherwise renders and stores a fresh entry.
func (c *MemoryPageCache) GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && c.now().Before(entry.expiresAt) {
		return entry.data, nil
	}

	data, err := render()
	if err != nil {
		return nil, err
	}

	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
	return data, nil
}

// Close releases the cache contents.
func (c *MemoryPageCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}

var _ PageCache = (*MemoryPageCache)(nil)
