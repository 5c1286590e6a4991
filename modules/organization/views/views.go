package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Translate resolves a message key for the current request language.
type Translate func(key string, args ...string) string

func esc(s string) string {
	return templ.EscapeString(s)
}

// html builds a component from a render function writing to a strings.Builder.
func html(fn func(ctx context.Context, b *strings.Builder) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if err := fn(ctx, &b); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func render(ctx context.Context, b *strings.Builder, c templ.Component) error {
	if c == nil {
		return nil
	}
	return c.Render(ctx, b)
}

// classes appends the validation state classes to base.
func classes(base string, valid, invalid bool) string {
	switch {
	case invalid:
		return base + " is-invalid"
	case valid:
		return base + " is-valid"
	}
	return base
}
