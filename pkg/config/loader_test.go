package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/config"
)

type defaultsConfig struct {
	Storage  string        `env:"TEST_CFG_STORAGE" envDefault:"memory"`
	Debounce time.Duration `env:"TEST_CFG_DEBOUNCE" envDefault:"250ms"`
}

type requiredConfig struct {
	URL string `env:"TEST_CFG_REQUIRED_URL,required"`
}

type fileConfig struct {
	Name  string   `env:"TEST_CFG_NAME"`
	Port  int      `env:"TEST_CFG_PORT"`
	Langs []string `env:"TEST_CFG_LANGS" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_STORAGE", "postgres")

	var first defaultsConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "postgres", first.Storage)

	t.Setenv("TEST_CFG_STORAGE", "mongo")
	var second defaultsConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "postgres", second.Storage)

	config.ResetCache()
	var third defaultsConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "mongo", third.Storage)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()

	assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadEnv(t *testing.T) {
	for _, k := range []string{"TEST_CFG_NAME", "TEST_CFG_PORT", "TEST_CFG_LANGS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	require.NoError(t, config.LoadEnv("testdata/.env.test", "testdata/.env.override"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from file", cfg.Name)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, []string{"en", "fr"}, cfg.Langs)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}
