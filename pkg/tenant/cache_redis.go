package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultRedisKeyPrefix namespaces tenant entries inside a shared Redis
// database.
const defaultRedisKeyPrefix = "tenant:"

// RedisCache is a Cache backed by Redis, for deployments that want a warm
// cache to survive process restarts. Expiration is always TTL-based on
// the Redis side; preload and disabled policies belong to the in-process
// memory cache.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed tenant cache. The client is owned
// by the caller; Close does not close it.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: defaultRedisKeyPrefix,
		ttl:    ttl,
	}
}

// Get retrieves and decodes a cached tenant record. Decode failures are
// treated as misses; a corrupt entry is deleted rather than served.
func (c *RedisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		c.client.Del(ctx, c.prefix+key)
		return nil, false
	}
	return &t, true
}

// Set stores the tenant as JSON with the configured TTL.
// Records that fail to encode are silently skipped; the next lookup
// simply misses and refetches.
func (c *RedisCache) Set(ctx context.Context, key string, tenant *Tenant) {
	if key == "" || tenant == nil {
		return
	}
	raw, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, raw, c.ttl)
}

// Delete removes a single entry.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.prefix+key)
}

// Clear removes every tenant entry under the cache's key prefix.
func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}

// Len counts the entries under the cache's key prefix.
func (c *RedisCache) Len() int {
	ctx := context.Background()
	n := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n
}

// Close is a no-op; the Redis client lifecycle belongs to the caller.
func (c *RedisCache) Close() error {
	return nil
}
