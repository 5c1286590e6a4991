package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript mirrors MemoryStore.Consume atomically on the server.
// KEYS[1] bucket; ARGV capacity, refill rate, interval ms, now ms, tokens.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local requested = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
  tokens = capacity
  last = now
end

local intervals = math.floor((now - last) / interval)
if intervals > math.floor(capacity / rate) then
  tokens = capacity
  last = now
elseif intervals > 0 then
  tokens = math.min(tokens + intervals * rate, capacity)
  last = last + intervals * interval
end

local allowed = 0
if tokens >= requested then
  tokens = tokens - requested
  allowed = 1
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('PEXPIRE', KEYS[1], (math.floor(capacity / rate) + 1) * interval)
return {tokens, allowed, last + interval}
`)

// RedisStore shares buckets between instances through Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) Consume(ctx context.Context, key string, tokens int, cfg Config) (int, bool, time.Time, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{s.prefix + key},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		s.now().UnixMilli(),
		tokens,
	).Int64Slice()
	if err != nil {
		return 0, false, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 3 {
		return 0, false, time.Time{}, ErrStoreUnavailable
	}
	return int(res[0]), res[1] == 1, time.UnixMilli(res[2]), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
