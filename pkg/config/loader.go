package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = map[reflect.Type]any{}

	dotenvOnce sync.Once
)

// Load parses environment variables into v according to its env struct tags.
// A .env file in the working directory is read once, when present; real
// environment variables take precedence. Each config type is parsed once and
// later calls receive a copy of the cached value.
//
//	type Config struct {
//		Storage string        `env:"ORG_STORAGE" envDefault:"memory"`
//		TTL     time.Duration `env:"ORG_CACHE_TTL" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[typ] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on error. Use it for settings the process
// cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given dotenv files into the process environment. Later
// files override earlier ones. The config cache is reset so subsequent Load
// calls observe the new values.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	ResetCache()
	return nil
}

// ResetCache drops every cached config value.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
