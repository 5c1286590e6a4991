package main

import "time"

// Storage backends selectable with ORG_STORAGE.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Cache backends selectable with ORG_CACHE.
const (
	CacheNone  = "none"
	CacheRedis = "redis"
)

type AppConfig struct {
	Env         string        `env:"APP_ENV" envDefault:"development"`
	Name        string        `env:"APP_NAME" envDefault:"onboarding"`
	Storage     string        `env:"ORG_STORAGE" envDefault:"memory"`
	Cache       string        `env:"ORG_CACHE" envDefault:"none"`
	CacheTTL    time.Duration `env:"ORG_CACHE_TTL" envDefault:"5m"`
	DefaultLang string        `env:"I18N_DEFAULT_LANG" envDefault:"en"`

	// TrustedProxies are the networks whose forwarding headers are honored.
	// Empty trusts every peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}
