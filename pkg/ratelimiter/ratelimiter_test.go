package ratelimiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var cfg = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, c := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), c)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
}

func TestBucket_MemoryStore(t *testing.T) {
	t.Parallel()

	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(clk.Now))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	ctx := context.Background()

	for i := range 3 {
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	other, err := b.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "buckets are per key")

	clk.Advance(time.Second)
	res, err = b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	clk.Advance(time.Hour)
	res, err = b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "refill is capped at capacity")

	_, err = b.AllowN(ctx, "ip", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	require.NoError(t, b.Reset(ctx, "ip"))
	res, err = b.AllowN(ctx, "ip", 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	h := ratelimiter.Middleware(b, ratelimiter.ByClientIP())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := func(remote string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := req("192.0.2.1:1234")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = req("192.0.2.1:5678")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, req("192.0.2.2:1234").Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"

	key := ratelimiter.Composite(ratelimiter.ByPath("api"), ratelimiter.ByClientIP())(r)
	assert.Equal(t, "api:192.0.2.1", key)

	long := ratelimiter.Composite(ratelimiter.ByPath(string(make([]byte, 100))))(r)
	assert.LessOrEqual(t, len(long), 64)
}

func TestBucket_RedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := ratelimiter.NewRedisStore(client, "test:ratelimit:")
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)

	key := t.Name()
	require.NoError(t, b.Reset(ctx, key))
	t.Cleanup(func() { _ = b.Reset(context.Background(), key) })

	for range 3 {
		res, err := b.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := b.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}
