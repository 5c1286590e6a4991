// Package organization serves the organization onboarding flow: the create
// form with its live organization key field, the organization page and the
// JSON lookup API.
//
// The key field runs on the server. Opening the form mounts an orgkey.Field
// behind a datastar event stream; keystrokes, focus and blur are posted back
// to the field by id, and every state change is streamed to the browser as a
// re-rendered field. Accepted keys are published as the orgKey and
// orgKeyValid signals.
//
//	tr, _ := locales.NewTranslator(ctx)
//	svc := orgsvc.NewService(orgsvc.NewMemoryStorage())
//	r.Mount("/", organization.Router(organization.RouterOptions{
//	    Onboarding: organization.NewOnboardingService(cfg, svc, tr, nil, log),
//	    API:        organization.NewAPIService(svc),
//	}))
package organization
