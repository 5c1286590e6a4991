package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Store keeps bucket state. Consume takes tokens from the bucket of key when
// enough are available and reports the tokens left; tokens == 0 only reads.
type Store interface {
	Consume(ctx context.Context, key string, tokens int, cfg Config) (remaining int, allowed bool, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

type Bucket struct {
	store Store
	cfg   Config
}

func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	remaining, allowed, resetAt, err := b.store.Consume(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: b.cfg.Capacity, Remaining: remaining, ResetAt: resetAt, Allowed: allowed}, nil
}

func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// refill returns the token count after the intervals elapsed since last.
func refill(tokens int, last, now time.Time, cfg Config) (int, time.Time) {
	intervals := int64(now.Sub(last) / cfg.RefillInterval)
	if intervals <= 0 {
		return tokens, last
	}
	if intervals > int64(cfg.Capacity/cfg.RefillRate) {
		return cfg.Capacity, now
	}
	tokens = min(tokens+int(intervals)*cfg.RefillRate, cfg.Capacity)
	return tokens, last.Add(time.Duration(intervals) * cfg.RefillInterval)
}
