package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/onboarding/pkg/config"
	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/pkg/mongo"
	"github.com/dmitrymomot/onboarding/pkg/pg"
	"github.com/dmitrymomot/onboarding/pkg/ratelimiter"
	"github.com/dmitrymomot/onboarding/pkg/redis"
	"github.com/dmitrymomot/onboarding/svc/organization"
)

var ErrUnknownBackend = errors.New("unknown backend")

// backend is an opened dependency with its readiness probe and cleanup.
type backend struct {
	health func(context.Context) error
	close  func(context.Context) error
	redis  goredis.UniversalClient
}

func openStorage(ctx context.Context, kind string, log *slog.Logger) (organization.Storage, *backend, error) {
	switch kind {
	case "", StorageMemory:
		return organization.NewMemoryStorage(), nil, nil

	case StoragePostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, organization.Migrations, organization.MigrationsDir, cfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return organization.NewPostgresStorage(pool), &backend{
			health: pg.Healthcheck(pool),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case StorageMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		db, err := mongo.NewDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		storage, err := organization.NewMongoStorage(ctx, db)
		if err != nil {
			_ = db.Client().Disconnect(context.WithoutCancel(ctx))
			return nil, nil, err
		}
		return storage, &backend{
			health: mongo.Healthcheck(db.Client()),
			close:  db.Client().Disconnect,
		}, nil
	}

	return nil, nil, fmt.Errorf("%w: ORG_STORAGE=%q", ErrUnknownBackend, kind)
}

func openCache(ctx context.Context, app AppConfig, log *slog.Logger) (organization.Cache, *backend, error) {
	switch app.Cache {
	case "", CacheNone:
		return organization.NoOpCache{}, nil, nil

	case CacheRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.InfoContext(ctx, "organization cache enabled",
			logger.Component("cache"),
			slog.Duration("ttl", app.CacheTTL),
		)
		return organization.NewRedisCache(client, app.CacheTTL), &backend{
			health: redis.Healthcheck(client),
			close:  func(context.Context) error { return client.Close() },
			redis:  client,
		}, nil
	}

	return nil, nil, fmt.Errorf("%w: ORG_CACHE=%q", ErrUnknownBackend, app.Cache)
}

// openRateLimiter shares buckets through the cache's Redis client when there
// is one, and keeps them in process otherwise.
func openRateLimiter(ctx context.Context, cache *backend, log *slog.Logger) (*ratelimiter.Bucket, func(), error) {
	var cfg ratelimiter.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	var (
		store ratelimiter.Store
		stop  = func() {}
	)
	if cache != nil && cache.redis != nil {
		store = ratelimiter.NewRedisStore(cache.redis, "onboarding:ratelimit:")
	} else {
		mem := ratelimiter.NewMemoryStore()
		store, stop = mem, mem.Close
	}

	bucket, err := ratelimiter.NewBucket(store, cfg)
	if err != nil {
		stop()
		return nil, nil, err
	}
	log.InfoContext(ctx, "api rate limit enabled",
		logger.Component("ratelimiter"),
		slog.Int("capacity", cfg.Capacity),
		slog.Int("refill_rate", cfg.RefillRate),
		slog.Duration("refill_interval", cfg.RefillInterval),
	)
	return bucket, stop, nil
}
