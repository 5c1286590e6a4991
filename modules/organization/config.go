package organization

import (
	"time"

	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

// Config holds the settings shared by the onboarding routes.
type Config struct {
	// HostURL is the public URL shown in front of the key, e.g. "https://app.example.com".
	HostURL string `env:"APP_PUBLIC_URL" envDefault:"http://localhost:8080"`

	// KeyDebounce delays the availability lookup after the last keystroke.
	KeyDebounce time.Duration `env:"ORG_KEY_DEBOUNCE" envDefault:"250ms"`
}

// Paths of the onboarding routes, as mounted by Router.
const (
	basePath      = "/organizations"
	newPath       = basePath + "/new"
	keyFieldPath  = newPath + "/key"
	keyStreamPath = keyFieldPath + "/stream"
	apiBasePath   = "/api/organizations"
)

func (c Config) withDefaults() Config {
	if c.KeyDebounce <= 0 {
		c.KeyDebounce = orgkey.DefaultDebounce
	}
	return c
}
