// Package ratelimiter implements token bucket rate limiting with in-memory
// and Redis stores and an HTTP middleware.
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//	    Capacity:       30,
//	    RefillRate:     10,
//	    RefillInterval: time.Second,
//	})
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP()))
//
// A bucket holds at most Capacity tokens and gains RefillRate tokens every
// RefillInterval. Denied requests consume nothing.
package ratelimiter
