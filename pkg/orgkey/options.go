package orgkey

import (
	"io"
	"log/slog"
	"time"
)

// DefaultDebounce is the quiet period after the last edit before a lookup is issued.
const DefaultDebounce = 250 * time.Millisecond

// Option configures a Field.
type Option func(*config)

type config struct {
	initial   *string
	readOnly  bool
	debounce  time.Duration
	translate TranslateFunc
	logger    *slog.Logger
	stateHook func(State)
}

func defaultConfig() config {
	return config{
		debounce:  DefaultDebounce,
		translate: DefaultTranslate,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithInitialValue seeds the field on mount. Unless the field is read-only
// the value is validated immediately.
func WithInitialValue(value string) Option {
	return func(c *config) {
		c.initial = &value
	}
}

// WithReadOnly renders the value as static text and disables input and validation.
func WithReadOnly(readOnly bool) Option {
	return func(c *config) {
		c.readOnly = readOnly
	}
}

// WithDebounce overrides the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.debounce = d
		}
	}
}

func WithTranslator(fn TranslateFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.translate = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStateHook registers a callback invoked with a snapshot after every state change.
// It runs in the same serialized section as the ChangeFunc.
func WithStateHook(fn func(State)) Option {
	return func(c *config) {
		c.stateHook = fn
	}
}
