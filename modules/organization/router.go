package organization

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services to mount. Each is optional.
type RouterOptions struct {
	Onboarding Mountable
	API        Mountable

	// APIMiddlewares wrap the lookup API only, e.g. rate limiting.
	APIMiddlewares []func(http.Handler) http.Handler
}

// Router mounts the onboarding pages under /organizations and the lookup API
// under /api/organizations.
//
// Example:
//
//	onboarding := organization.NewOnboardingService(cfg, svc, tr, organization.DefaultViews(), log)
//	r.Mount("/", organization.Router(organization.RouterOptions{
//	    Onboarding: onboarding,
//	    API:        organization.NewAPIService(svc),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Onboarding != nil {
		r.Mount(basePath, opts.Onboarding.Handle())
	}
	if opts.API != nil {
		r.Route(apiBasePath, func(r chi.Router) {
			r.Use(opts.APIMiddlewares...)
			r.Mount("/", opts.API.Handle())
		})
	}

	return r
}
