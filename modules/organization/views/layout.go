package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// DatastarScript is the client bundle loaded by every page.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// Layout wraps body in the HTML document shell with the toast container.
func Layout(lang, title string, body templ.Component) templ.Component {
	return html(func(ctx context.Context, b *strings.Builder) error {
		b.WriteString(`<!DOCTYPE html><html lang="` + esc(lang) + `"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + esc(title) + `</title>`)
		b.WriteString(`<script type="module" src="` + DatastarScript + `"></script>`)
		b.WriteString(`</head><body><div id="toast-container"></div><main>`)
		if err := render(ctx, b, body); err != nil {
			return err
		}
		b.WriteString(`</main></body></html>`)
		return nil
	})
}
