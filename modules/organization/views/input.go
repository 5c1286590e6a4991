package views

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/onboarding/pkg/orgkey"
)

// ValidationInputParams wraps a labeled control with its validation display.
type ValidationInputParams struct {
	ID        string
	Label     string
	Required  bool
	Error     string
	IsValid   bool
	IsInvalid bool
	Control   templ.Component
}

// ValidationInput renders the label, required marker, the control and, while
// the value is invalid, its error text.
func ValidationInput(p ValidationInputParams) templ.Component {
	return html(func(ctx context.Context, b *strings.Builder) error {
		b.WriteString(`<div class="` + esc(classes("form-group", p.IsValid, p.IsInvalid)) + `">`)
		b.WriteString(`<label for="` + esc(p.ID) + `">` + esc(p.Label))
		if p.Required {
			b.WriteString(` <span class="required" aria-hidden="true">*</span>`)
		}
		b.WriteString(`</label>`)
		if err := render(ctx, b, p.Control); err != nil {
			return err
		}
		if p.IsInvalid && p.Error != "" {
			b.WriteString(`<div class="invalid-feedback" id="` + esc(p.ID) + `-error">` + esc(p.Error) + `</div>`)
		}
		b.WriteString(`</div>`)
		return nil
	})
}

// KeyInputParams describes one render of the organization key field.
type KeyInputParams struct {
	FieldID   string // registry id, empty for read-only fields
	State     orgkey.State
	ReadOnly  bool
	HostURL   string
	BasePath  string // mount point of the field endpoints, e.g. "/organizations/new/key"
	Translate Translate
}

// KeyInputElementID is the id of the element patched on every state change.
const KeyInputElementID = "organization-key-field"

// KeyInput renders the field: the host prefix followed by either the static
// key (read-only) or the live input wired to the field endpoints.
func KeyInput(p KeyInputParams) templ.Component {
	return html(func(ctx context.Context, b *strings.Builder) error {
		control := html(func(_ context.Context, cb *strings.Builder) error {
			cb.WriteString(`<div class="input-group">`)
			cb.WriteString(`<span class="input-group-text">` + esc(orgkey.DisplayPrefix(p.HostURL)) + `</span>`)
			if p.ReadOnly {
				cb.WriteString(`<span class="form-control-plaintext" id="organization-key">` + esc(p.State.Value) + `</span>`)
				cb.WriteString(`</div>`)
				return nil
			}

			base := p.BasePath + "/" + p.FieldID
			cb.WriteString(`<input type="text" id="organization-key" name="key" required autofocus`)
			cb.WriteString(` maxlength="` + strconv.Itoa(orgkey.MaxLength) + `"`)
			cb.WriteString(` value="` + esc(p.State.Value) + `"`)
			cb.WriteString(` class="` + esc(classes("form-control", p.State.IsValid(), p.State.IsInvalid())) + `"`)
			if p.State.IsInvalid() {
				cb.WriteString(` aria-invalid="true" aria-describedby="organization-key-error"`)
			}
			cb.WriteString(` data-bind-org-key-input`)
			cb.WriteString(` data-on-input="` + esc("@post('"+base+"/input')") + `"`)
			cb.WriteString(` data-on-focus="` + esc("@post('"+base+"/focus')") + `"`)
			cb.WriteString(` data-on-blur="` + esc("@post('"+base+"/blur')") + `"`)
			cb.WriteString(`>`)
			if p.State.Validating {
				cb.WriteString(`<span class="input-group-text spinner" role="status" aria-label="…"></span>`)
			}
			cb.WriteString(`</div>`)
			return nil
		})

		b.WriteString(`<div id="` + KeyInputElementID + `">`)
		if err := ValidationInput(ValidationInputParams{
			ID:        "organization-key",
			Label:     p.Translate(orgkey.MessageLabel),
			Required:  !p.ReadOnly,
			Error:     p.State.Error,
			IsValid:   !p.ReadOnly && p.State.IsValid(),
			IsInvalid: !p.ReadOnly && p.State.IsInvalid(),
			Control:   control,
		}).Render(ctx, b); err != nil {
			return err
		}
		b.WriteString(`</div>`)
		return nil
	})
}

// KeyFieldMount is the placeholder that opens the field stream on load. The
// stream patches KeyInputElementID inside it; the wrapper itself is never
// replaced, so the stream outlives every patch.
func KeyFieldMount(streamURL, initial string) templ.Component {
	return html(func(_ context.Context, b *strings.Builder) error {
		signals, err := json.Marshal(map[string]any{
			"orgKeyInput": initial,
			"orgKey":      "",
			"orgKeyValid": false,
		})
		if err != nil {
			return err
		}
		b.WriteString(`<div id="organization-key-stream" data-signals="` + esc(string(signals)) + `"`)
		b.WriteString(` data-on-load="` + esc("@get('"+streamURL+"')") + `">`)
		b.WriteString(`<div id="` + KeyInputElementID + `"></div>`)
		b.WriteString(`</div>`)
		return nil
	})
}
