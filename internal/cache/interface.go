package cache

import (
	"context"
	"time"
)

// RenderFunc produces the response bytes for a cache key on a miss.
type RenderFunc func() ([]byte, error)

// PageCache is a time-boxed cache of fully rendered responses. Entries are
// only ever invalidated by expiry, never by writes: a new post shows up on
// the cached page when the TTL runs out, a deliberate staleness/throughput
// trade-off.
type PageCache interface {
	// GetOrRender returns the cached bytes for key if they are younger than
	// ttl; otherwise it calls render, stores the result under key, and
	// returns it.
	GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, error)

	Close() error
}
