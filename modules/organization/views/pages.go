package views

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// Message keys used by the pages.
const (
	MessageNewTitle   = "onboarding.create_organization.title"
	MessageNameLabel  = "onboarding.create_organization.name.label"
	MessageSubmit     = "onboarding.create_organization.submit"
	MessageCreatedAt  = "organization.created_at"
	MessageErrorTitle = "errors.title"
	MessageRetry      = "errors.retry"
	MessageRequestID  = "errors.request_id"
)

// NewOrganizationPageParams feeds the create form. KeyField is the key field
// placeholder (see KeyFieldMount) that opens the live field stream.
type NewOrganizationPageParams struct {
	Lang       string
	Action     string
	Name       string
	NameError  string
	KeyError   string
	SuggestURL string // proposes a key from the name when set
	KeyField   templ.Component
	Translate  Translate
}

// NewOrganizationPage renders the create form.
func NewOrganizationPage(p NewOrganizationPageParams) templ.Component {
	return Layout(p.Lang, p.Translate(MessageNewTitle), NewOrganizationForm(p))
}

// NewOrganizationForm is the form alone, patched into #organization-form.
func NewOrganizationForm(p NewOrganizationPageParams) templ.Component {
	return html(func(ctx context.Context, b *strings.Builder) error {
		b.WriteString(`<form id="organization-form" method="post" action="` + esc(p.Action) + `" novalidate>`)
		b.WriteString(`<h1>` + esc(p.Translate(MessageNewTitle)) + `</h1>`)

		name := html(func(_ context.Context, cb *strings.Builder) error {
			cb.WriteString(`<input type="text" id="organization-name" name="name" required maxlength="255" class="`)
			cb.WriteString(esc(classes("form-control", false, p.NameError != "")) + `" value="` + esc(p.Name) + `"`)
			if p.SuggestURL != "" {
				cb.WriteString(` data-bind-org-name data-on-change="` + esc("@post('"+p.SuggestURL+"')") + `"`)
			}
			cb.WriteString(`>`)
			return nil
		})
		if err := ValidationInput(ValidationInputParams{
			ID:        "organization-name",
			Label:     p.Translate(MessageNameLabel),
			Required:  true,
			Error:     p.NameError,
			IsInvalid: p.NameError != "",
			Control:   name,
		}).Render(ctx, b); err != nil {
			return err
		}

		if err := render(ctx, b, p.KeyField); err != nil {
			return err
		}
		if p.KeyError != "" {
			b.WriteString(`<div class="invalid-feedback d-block" id="organization-key-submit-error">` + esc(p.KeyError) + `</div>`)
		}

		b.WriteString(`<button type="submit" class="btn btn-primary">` + esc(p.Translate(MessageSubmit)) + `</button>`)
		b.WriteString(`</form>`)
		return nil
	})
}

type OrganizationPageParams struct {
	Lang      string
	Name      string
	CreatedAt time.Time
	KeyField  templ.Component
	Translate Translate
}

// OrganizationPage shows a registered organization with its key read-only.
func OrganizationPage(p OrganizationPageParams) templ.Component {
	body := html(func(ctx context.Context, b *strings.Builder) error {
		b.WriteString(`<section id="organization"><h1>` + esc(p.Name) + `</h1>`)
		if err := render(ctx, b, p.KeyField); err != nil {
			return err
		}
		if !p.CreatedAt.IsZero() {
			b.WriteString(`<p class="text-muted">` + esc(p.Translate(MessageCreatedAt)) + ` `)
			b.WriteString(`<time datetime="` + p.CreatedAt.UTC().Format(time.RFC3339) + `">`)
			b.WriteString(esc(p.CreatedAt.UTC().Format("2006-01-02")) + `</time></p>`)
		}
		b.WriteString(`</section>`)
		return nil
	})
	return Layout(p.Lang, p.Name, body)
}

type ErrorPageParams struct {
	Lang       string
	StatusCode int
	Message    string
	RequestID  string
	RetryURL   string
	Translate  Translate
}

func ErrorPage(p ErrorPageParams) templ.Component {
	title := p.Translate(MessageErrorTitle)
	body := html(func(_ context.Context, b *strings.Builder) error {
		b.WriteString(`<section class="error-page"><h1>` + strconv.Itoa(p.StatusCode) + ` ` + esc(title) + `</h1>`)
		b.WriteString(`<p>` + esc(p.Message) + `</p>`)
		if p.RequestID != "" {
			b.WriteString(`<p class="text-muted">` + esc(p.Translate(MessageRequestID)) + `: <code>` + esc(p.RequestID) + `</code></p>`)
		}
		if p.RetryURL != "" {
			b.WriteString(`<a class="btn" href="` + esc(p.RetryURL) + `">` + esc(p.Translate(MessageRetry)) + `</a>`)
		}
		b.WriteString(`</section>`)
		return nil
	})
	return Layout(p.Lang, title, body)
}

type ErrorToastParams struct {
	Message   string
	Type      string
	RequestID string
}

// ErrorToast is prepended to #toast-container for datastar requests.
func ErrorToast(p ErrorToastParams) templ.Component {
	return html(func(_ context.Context, b *strings.Builder) error {
		kind := p.Type
		if kind == "" {
			kind = "error"
		}
		b.WriteString(`<div class="toast toast-` + esc(kind) + `" role="alert"`)
		if p.RequestID != "" {
			b.WriteString(` data-request-id="` + esc(p.RequestID) + `"`)
		}
		b.WriteString(`>` + esc(p.Message) + `</div>`)
		return nil
	})
}
