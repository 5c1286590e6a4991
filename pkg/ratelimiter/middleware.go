package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/onboarding/pkg/clientip"
	"github.com/dmitrymomot/onboarding/pkg/logger"
)

const maxKeyLength = 64

// KeyFunc picks the bucket of a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByClientIP keys requests by client address, as resolved by clientip.Middleware
// when present.
func ByClientIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return ip
		}
		return clientip.GetIP(r)
	}
}

// ByPath keys requests by route prefix, so each limited surface gets its own bucket.
func ByPath(prefix string) KeyFunc {
	return func(*http.Request) string { return prefix }
}

// Composite joins several keys; long results are hashed.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			_, _ = h.Write([]byte(combined))
			return strconv.FormatUint(h.Sum64(), 36)
		}
		return combined
	}
}

type middlewareConfig struct {
	log     *slog.Logger
	limited http.Handler
}

type MiddlewareOption func(*middlewareConfig)

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLimitedHandler renders denied requests. The default answers 429 as plain text.
func WithLimitedHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.limited = h
		}
	}
}

// Middleware limits requests per key and sets the X-RateLimit-* headers.
// Requests pass through when the store fails.
func Middleware(b *Bucket, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		log: logger.Discard(),
		limited: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), key)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "rate limiter unavailable",
					logger.Component("ratelimiter"),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				if retry := int(res.RetryAfter().Seconds()); retry > 0 {
					h.Set("Retry-After", strconv.Itoa(retry))
				}
				cfg.log.InfoContext(r.Context(), "rate limited",
					logger.Component("ratelimiter"),
					slog.String("key", key),
				)
				cfg.limited.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
