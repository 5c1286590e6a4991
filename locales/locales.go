// Package locales embeds the application translations.
package locales

import (
	"context"
	"embed"

	"github.com/dmitrymomot/onboarding/pkg/i18n"
)

//go:embed *.yaml
var files embed.FS

// Adapter serves the embedded translation files.
func Adapter() i18n.Adapter {
	return i18n.NewFSAdapter(files, ".")
}

// NewTranslator loads the embedded translations.
func NewTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, Adapter(), opts...)
}
