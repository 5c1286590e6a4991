package ratelimiter

import "time"

// Result reports the bucket state after a request.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left after the request
	ResetAt   time.Time // next refill
	Allowed   bool
}

// RetryAfter is the wait before a denied request can succeed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Config describes a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"30"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"10"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}
