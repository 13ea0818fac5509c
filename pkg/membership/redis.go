package membership

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// RedisCache shares membership sets across processes. Entries are stored
// as JSON arrays; numeric identifiers survive the round-trip because
// tenant.ExtractID normalizes decoded float64 values back to int64.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a Redis-backed membership cache. The prefix
// namespaces keys so several plugins can share one Redis instance.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "tenantguard:membership:"
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]tenant.ID, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}

	ids := make([]tenant.ID, 0, len(raw))
	for _, v := range raw {
		if id, ok := tenant.ExtractID(v); ok {
			ids = append(ids, id)
		}
	}
	return ids, true
}

func (c *RedisCache) Set(ctx context.Context, key string, ids []tenant.ID, ttl time.Duration) {
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	// Cache writes are best effort; a failed write just means a re-read.
	_ = c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, c.prefix+key).Err()
}

// Close is a no-op: the Redis client is owned by the caller.
func (c *RedisCache) Close() error { return nil }
