package i18n

import (
	"context"
	"log/slog"
	"net/http"
)

const (
	// QueryParam and CookieName carry an explicit language choice.
	QueryParam = "lang"
	CookieName = "lang"

	maxHeaderLength = 4096
)

// Middleware negotiates the request language and stores it with SetLocale.
// An explicit ?lang= query parameter wins over the lang cookie, which wins
// over Accept-Language.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), t.Match(preferences(r)...))))
		})
	}
}

func preferences(r *http.Request) []string {
	if q := r.URL.Query().Get(QueryParam); q != "" {
		return []string{q}
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return []string{c.Value}
	}
	header := r.Header.Get("Accept-Language")
	if len(header) > maxHeaderLength {
		header = header[:maxHeaderLength]
	}
	return []string{header}
}

// LoggerExtractor adds "locale" to records logged with a request context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if l, ok := ctx.Value(localeContextKey{}).(string); ok && l != "" {
			return slog.String("locale", l), true
		}
		return slog.Attr{}, false
	}
}
