package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/onboarding/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "cloudflare header wins",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name:       "first valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "invalid headers fall through",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:8080",
			expected:   "2001:db8::1",
		},
		{
			name:       "ipv4 mapped ipv6 is unmapped",
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.1"},
			remoteAddr: "10.0.0.1:1",
			expected:   "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.7",
			expected:   "192.0.2.7",
		},
		{
			name:       "nothing valid",
			remoteAddr: "pipe",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(r))
		})
	}
}

func TestResolver_TrustedProxies(t *testing.T) {
	t.Parallel()

	res := clientip.NewResolver(clientip.WithTrustedProxies("10.0.0.0/8", "bogus"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")

	r.RemoteAddr = "10.1.2.3:443"
	assert.Equal(t, "203.0.113.9", res.IP(r))

	r.RemoteAddr = "198.51.100.1:443"
	assert.Equal(t, "198.51.100.1", res.IP(r), "untrusted peers cannot set the address")
}

func TestResolver_WithHeaders(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1"
	r.Header.Set("X-Real-IP", "192.0.2.1")

	assert.Equal(t, "10.0.0.1", clientip.NewResolver(clientip.WithHeaders()).IP(r))
	assert.Equal(t, "192.0.2.1", clientip.NewResolver(clientip.WithHeaders("X-Real-IP")).IP(r))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.10", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "192.0.2.1"))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
