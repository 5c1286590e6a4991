// Package i18n loads YAML translation catalogs and negotiates the request
// language with golang.org/x/text/language.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales.FS, "."))
//	r.Use(i18n.Middleware(tr))
//	...
//	label := tr.Tc(r.Context(), "onboarding.create_organization.organization_name")
//
// Messages are stored under flat dot-separated keys. Lookups fall back to the
// default language and finally to the key itself.
package i18n
