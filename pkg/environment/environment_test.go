package environment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want environment.Environment
	}{
		{"production", environment.Production},
		{"PROD", environment.Production},
		{" stage ", environment.Staging},
		{"staging", environment.Staging},
		{"development", environment.Development},
		{"", environment.Development},
		{"qa", environment.Development},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, environment.Parse(tt.in))
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, environment.FromContext(context.Background()))
	assert.Empty(t, environment.FromContext(nil)) //nolint:staticcheck

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.Equal(t, environment.Production, environment.FromContext(ctx))
	assert.True(t, environment.IsProduction(ctx))
	assert.False(t, environment.IsDevelopment(ctx))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got environment.Environment
	h := environment.Middleware(environment.Staging)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = environment.FromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, environment.Staging, got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := environment.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(environment.WithContext(context.Background(), environment.Development))
	require.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "development", attr.Value.String())
}
