package environment

import (
	"context"
	"strings"
)

// Environment names the deployment the onboarding service runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps APP_ENV values, including the short aliases, to an Environment.
// Unknown values fall back to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) String() string {
	return string(e)
}

type contextKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when none is set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}
