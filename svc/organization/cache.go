package organization

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds organizations by key. Only existing organizations are cached,
// so a key freed or created elsewhere is never reported stale as available.
type Cache interface {
	Get(ctx context.Context, key string) (*Organization, bool)
	Set(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, key string) error
}

type NoOpCache struct{}

func (NoOpCache) Get(context.Context, string) (*Organization, bool) { return nil, false }
func (NoOpCache) Set(context.Context, *Organization) error          { return nil }
func (NoOpCache) Delete(context.Context, string) error              { return nil }

// RedisCache stores JSON encoded organizations under "org:key:{key}".
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func redisKey(key string) string {
	return "org:key:" + key
}

// Get treats every redis failure as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*Organization, bool) {
	raw, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var org Organization
	if err := json.Unmarshal(raw, &org); err != nil {
		return nil, false
	}
	return &org, true
}

func (c *RedisCache) Set(ctx context.Context, org *Organization) error {
	raw, err := json.Marshal(org)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(org.Key), raw, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, redisKey(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
