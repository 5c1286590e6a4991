package organization

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/onboarding/handler"
	"github.com/dmitrymomot/onboarding/pkg/binder"
	orgsvc "github.com/dmitrymomot/onboarding/svc/organization"
)

// APIService is the JSON lookup API used by remote key checks
// (see organization.Client).
type APIService struct {
	orgs Finder
}

// Finder looks organizations up by key, e.g. *orgsvc.Service.
type Finder interface {
	Get(ctx context.Context, key string) (*orgsvc.Organization, error)
}

func NewAPIService(orgs Finder) *APIService {
	return &APIService{orgs: orgs}
}

func (s *APIService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/{key}", handler.Wrap(s.get,
		handler.WithBinders[handler.Context, showRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, showRequest](jsonErrorHandler),
	))

	return r
}

func (s *APIService) get(ctx handler.Context, req showRequest) handler.Response {
	org, err := s.orgs.Get(ctx, req.Key)
	switch {
	case errors.Is(err, orgsvc.ErrNotFound):
		return handler.JSONError(handler.ErrNotFound)
	case err != nil:
		return handler.JSONError(err)
	}
	return handler.JSON(org)
}

func jsonErrorHandler(ctx handler.Context, err error) {
	_ = handler.JSONError(err).Render(ctx.ResponseWriter(), ctx.Request())
}
