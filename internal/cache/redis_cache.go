package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/yatube/yatube/pkg/log"
)

// RedisPageCache implements PageCache backed by Redis. Concurrent misses on
// the same key are collapsed with singleflight so a popular page is rendered
// once per expiry, not once per request.
type RedisPageCache struct {
	client *redis.Client
	prefix string
	sf     singleflight.Group
}

// NewRedisPageCache creates a Redis-backed page cache.
func NewRedisPageCache(address, password string, db int, prefix string) (*RedisPageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPageCache{client: client, prefix: prefix}, nil
}

func (c *RedisPageCache) key(key string) string {
	return c.prefix + ":" + key
}

// GetOrRender returns the cached bytes for key, rendering and storing them
// on a miss. Cache failures degrade to rendering: a broken Redis never
// breaks the page.
func (c *RedisPageCache) GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, error) {
	rkey := c.key(key)

	data, err := c.client.Get(ctx, rkey).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str("key", key).Msg("page cache get failed, rendering directly")
		return render()
	}

	result, err, _ := c.sf.Do(rkey, func() (interface{}, error) {
		// Another request may have populated the key while we waited.
		if data, err := c.client.Get(ctx, rkey).Bytes(); err == nil {
			return data, nil
		}

		data, err := render()
		if err != nil {
			return nil, err
		}

		if err := c.client.Set(ctx, rkey, data, ttl).Err(); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str("key", key).Msg("page cache set failed")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// Close closes the Redis client.
func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

var _ PageCache = (*RedisPageCache)(nil)
