package i18n

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/onboarding/pkg/logger"
)

// DefaultLanguage is used when nothing better can be negotiated.
const DefaultLanguage = "en"

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Translator resolves message keys for a language. Missing messages fall
// back to the default language, then to the key itself.
type Translator struct {
	catalog     Catalog
	defaultLang string
	langs       []string
	matcher     language.Matcher
	logger      *slog.Logger
	logMissing  bool
}

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every unresolved key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.logMissing = enabled }
}

// NewTranslator loads the catalog from adapter.
func NewTranslator(ctx context.Context, adapter Adapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	catalog, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrNoTranslations
	}
	t.catalog = catalog

	t.langs = make([]string, 0, len(catalog))
	for lang := range catalog {
		if lang != t.defaultLang {
			t.langs = append(t.langs, lang)
		}
	}
	sort.Strings(t.langs)
	// The matcher falls back to its first tag.
	t.langs = append([]string{t.defaultLang}, t.langs...)

	tags := make([]language.Tag, 0, len(t.langs))
	for _, lang := range t.langs {
		tags = append(tags, language.Make(lang))
	}
	t.matcher = language.NewMatcher(tags)

	t.logger.InfoContext(ctx, "translations loaded",
		logger.Component("i18n"),
		slog.Any("languages", t.langs),
	)
	return t, nil
}

// Languages lists the supported languages, default first.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.langs...)
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match picks the best supported language for the given preferences, each
// either a plain tag or a full Accept-Language header value.
func (t *Translator) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Has reports whether lang defines key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.catalog[strings.ToLower(lang)][key]
	return ok
}

// T translates key into lang. args are name/value pairs substituted into
// %{name} placeholders.
//
//	t.T("en", "validation.max_length", "max", "255")
func (t *Translator) T(lang, key string, args ...string) string {
	lang = strings.ToLower(lang)
	msg, ok := t.catalog[lang][key]
	if !ok {
		msg, ok = t.catalog[t.defaultLang][key]
	}
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found",
				logger.Component("i18n"),
				logger.Locale(lang),
				slog.String("key", key),
			)
		}
		msg = key
	}
	return substitute(msg, args)
}

// Tc translates key into the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Func binds the translator to one language.
func (t *Translator) Func(lang string) func(key string) string {
	return func(key string) string { return t.T(lang, key) }
}

func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
