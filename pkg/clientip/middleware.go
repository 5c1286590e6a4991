package clientip

import "net/http"

// Middleware stores the resolved client address in the request context.
// A nil resolver uses the defaults.
func Middleware(res *Resolver) func(http.Handler) http.Handler {
	if res == nil {
		res = defaultResolver
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), res.IP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
