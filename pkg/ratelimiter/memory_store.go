package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type memoryBucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process. Buckets idle for an hour are dropped.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
	now     func() time.Time

	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often idle buckets are dropped; 0 disables it.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.cleanupInterval = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		buckets:         make(map[string]*memoryBucket),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cleanupInterval > 0 {
		go s.cleanup()
	}
	return s
}

func (s *MemoryStore) Consume(_ context.Context, key string, tokens int, cfg Config) (int, bool, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &memoryBucket{tokens: cfg.Capacity, lastRefill: now}
		s.buckets[key] = b
	}
	b.tokens, b.lastRefill = refill(b.tokens, b.lastRefill, now, cfg)
	b.lastAccess = now

	allowed := b.tokens >= tokens
	if allowed {
		b.tokens -= tokens
	}
	return b.tokens, allowed, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeStale(time.Hour)
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) removeStale(idle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, b := range s.buckets {
		if now.Sub(b.lastAccess) > idle {
			delete(s.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}
