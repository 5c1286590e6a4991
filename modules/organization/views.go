package organization

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/onboarding/handler"
	"github.com/dmitrymomot/onboarding/modules/organization/views"
	"github.com/dmitrymomot/onboarding/pkg/i18n"
	"github.com/dmitrymomot/onboarding/pkg/validator"
)

// Views are the components rendered by the onboarding service. Replace any of
// them to restyle the flow.
type Views struct {
	NewOrganizationPage func(views.NewOrganizationPageParams) templ.Component
	NewOrganizationForm func(views.NewOrganizationPageParams) templ.Component
	OrganizationPage    func(views.OrganizationPageParams) templ.Component
	KeyInput            func(views.KeyInputParams) templ.Component
	KeyFieldMount       func(streamURL, initial string) templ.Component
	ErrorPage           func(views.ErrorPageParams) templ.Component
	ErrorToast          func(views.ErrorToastParams) templ.Component
}

func DefaultViews() *Views {
	return &Views{
		NewOrganizationPage: views.NewOrganizationPage,
		NewOrganizationForm: views.NewOrganizationForm,
		OrganizationPage:    views.OrganizationPage,
		KeyInput:            views.KeyInput,
		KeyFieldMount:       views.KeyFieldMount,
		ErrorPage:           views.ErrorPage,
		ErrorToast:          views.ErrorToast,
	}
}

func translator(tr *i18n.Translator, lang string) views.Translate {
	return func(key string, args ...string) string {
		return tr.T(lang, key, args...)
	}
}

// validationMessage renders ve in the request language, falling back to its
// plain message when it has no translation key.
func validationMessage(t views.Translate, ve validator.ValidationError) string {
	if ve.TranslationKey == "" {
		return ve.Message
	}
	names := make([]string, 0, len(ve.TranslationValues))
	for name := range ve.TranslationValues {
		names = append(names, name)
	}
	slices.Sort(names)

	args := make([]string, 0, len(names)*2)
	for _, name := range names {
		args = append(args, name, fmt.Sprint(ve.TranslationValues[name]))
	}
	return t(ve.TranslationKey, args...)
}

// localized defers building c until render time, when the request locale is
// known from ctx.
func localized(tr *i18n.Translator, build func(lang string, t views.Translate) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := i18n.GetLocale(ctx)
		return build(lang, translator(tr, lang)).Render(ctx, w)
	})
}

// NewErrorHandler renders errors with v: an error page for plain requests, a
// toast for datastar requests. Messages are translated in the request locale.
func NewErrorHandler(log *slog.Logger, tr *i18n.Translator, v *Views) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return localized(tr, func(lang string, t views.Translate) templ.Component {
				return v.ErrorPage(views.ErrorPageParams{
					Lang:       lang,
					StatusCode: p.StatusCode,
					Message:    t(p.MessageKey),
					RequestID:  p.RequestID,
					RetryURL:   retryURL(p),
					Translate:  t,
				})
			})
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return localized(tr, func(_ string, t views.Translate) templ.Component {
				return v.ErrorToast(views.ErrorToastParams{
					Message:   t(p.MessageKey),
					Type:      p.Type,
					RequestID: p.RequestID,
				})
			})
		},
	})
}

// retryURL only offers a retry for server errors.
func retryURL(p handler.ErrorPageParams) string {
	if p.StatusCode < http.StatusInternalServerError {
		return ""
	}
	return p.RetryURL
}
