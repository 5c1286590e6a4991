package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/i18n"
)

const labelKey = "onboarding.create_organization.organization_name"

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(os.DirFS("testdata"), "."))
	require.NoError(t, err)
	return tr
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	cat, err := i18n.ParseYAML([]byte("en:\n  a:\n    b: one\n  a.b.c: two\n  n: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.b": "one", "a.b.c": "two", "n": "5"}, cat["en"])

	_, err = i18n.ParseYAML([]byte("en: just a string"))
	assert.ErrorIs(t, err, i18n.ErrInvalidStructure)

	_, err = i18n.ParseYAML([]byte("en: [unterminated"))
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, []string{"en", "fr"}, tr.Languages())
	assert.Equal(t, "Organization key", tr.T("en", labelKey))
	assert.Equal(t, "Clé de l'organisation", tr.T("fr", labelKey))
	assert.Equal(t, "Invalid key", tr.T("fr", labelKey+".error"), "falls back to default language")
	assert.Equal(t, "missing.key", tr.T("en", "missing.key"))
	assert.Equal(t, "Hello, Ada!", tr.T("en", "greeting", "name", "Ada"))
	assert.Equal(t, "Bonjour, %{name} !", tr.T("FR", "greeting"))
	assert.True(t, tr.Has("en", labelKey+".error"))
	assert.False(t, tr.Has("fr", labelKey+".error"))
	assert.Equal(t, "Organization key", tr.Func("de")(labelKey))
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		prefs []string
		want  string
	}{
		{nil, "en"},
		{[]string{""}, "en"},
		{[]string{"fr"}, "fr"},
		{[]string{"fr-CA,fr;q=0.9,en;q=0.8"}, "fr"},
		{[]string{"de-DE,de;q=0.9"}, "en"},
		{[]string{"!!invalid!!"}, "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.Match(tt.prefs...), "%v", tt.prefs)
	}
}

func TestNewTranslator_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(context.Background(), nil)
	assert.ErrorIs(t, err, i18n.ErrNilAdapter)

	_, err = i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(os.DirFS("testdata"), "missing"))
	assert.ErrorIs(t, err, i18n.ErrReadingSource)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	var got string
	h := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "fr", got)

	req = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	req.Header.Set("Accept-Language", "fr")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "en", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: "fr"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "fr", got)
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	ctx := i18n.SetLocale(context.Background(), "fr")
	assert.Equal(t, "fr", i18n.GetLocale(ctx))

	attr, ok := i18n.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "fr", attr.Value.String())
}
