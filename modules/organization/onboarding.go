package organization

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/onboarding/handler"
	"github.com/dmitrymomot/onboarding/modules/organization/views"
	"github.com/dmitrymomot/onboarding/pkg/binder"
	"github.com/dmitrymomot/onboarding/pkg/i18n"
	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/pkg/orgkey"
	"github.com/dmitrymomot/onboarding/pkg/validator"
	orgsvc "github.com/dmitrymomot/onboarding/svc/organization"
)

// Organizations is the organization service as used by the onboarding flow.
type Organizations interface {
	orgkey.Lookup
	Finder
	Create(ctx context.Context, p orgsvc.CreateParams) (*orgsvc.Organization, error)
	SuggestKey(ctx context.Context, name string) (string, error)
}

// OnboardingService serves the create-organization flow and the live key field.
type OnboardingService struct {
	cfg          Config
	orgs         Organizations
	tr           *i18n.Translator
	registry     *Registry
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

func NewOnboardingService(
	cfg Config,
	orgs Organizations,
	tr *i18n.Translator,
	v *Views,
	log *slog.Logger,
) *OnboardingService {
	if v == nil {
		v = DefaultViews()
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("onboarding"))

	return &OnboardingService{
		cfg:          cfg.withDefaults(),
		orgs:         orgs,
		tr:           tr,
		registry:     NewRegistry(),
		views:        v,
		errorHandler: NewErrorHandler(log, tr, v),
		log:          log,
	}
}

// Registry exposes the live fields, mostly for diagnostics.
func (s *OnboardingService) Registry() *Registry {
	return s.registry
}

func (s *OnboardingService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/new", handler.Wrap(s.newPage,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	// Live key field: one stream per mounted field plus its input events.
	r.Get("/new/key/stream", handler.Wrap(s.keyStream,
		handler.WithBinders[handler.Context, keyStreamRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, keyStreamRequest](s.errorHandler),
	))
	r.Post("/new/key/{id}/input", handler.Wrap(s.keyInput,
		handler.WithBinders[handler.Context, keyInputRequest](
			binder.Path(chi.URLParam),
			binder.Signals(),
		),
		handler.WithErrorHandler[handler.Context, keyInputRequest](s.errorHandler),
	))
	r.Post("/new/key/{id}/focus", handler.Wrap(s.keyFocus,
		handler.WithBinders[handler.Context, keyEventRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, keyEventRequest](s.errorHandler),
	))
	r.Post("/new/key/{id}/blur", handler.Wrap(s.keyBlur,
		handler.WithBinders[handler.Context, keyEventRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, keyEventRequest](s.errorHandler),
	))
	r.Post("/new/key/{id}/suggest", handler.Wrap(s.keySuggest,
		handler.WithBinders[handler.Context, keySuggestRequest](
			binder.Path(chi.URLParam),
			binder.Signals(),
		),
		handler.WithErrorHandler[handler.Context, keySuggestRequest](s.errorHandler),
	))

	r.Post("/", handler.Wrap(s.create,
		handler.WithBinders[handler.Context, createRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, createRequest](s.errorHandler),
	))
	r.Get("/{key}", handler.Wrap(s.show,
		handler.WithBinders[handler.Context, showRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, showRequest](s.errorHandler),
	))

	return r
}

// formParams builds the create form with a fresh key field. initialKey is
// revalidated by the field as soon as its stream opens.
func (s *OnboardingService) formParams(lang, name, initialKey string) views.NewOrganizationPageParams {
	fieldID := uuid.NewString()
	q := url.Values{"field": {fieldID}}
	if initialKey != "" {
		q.Set("initial", initialKey)
	}

	return views.NewOrganizationPageParams{
		Lang:       lang,
		Action:     basePath,
		Name:       name,
		SuggestURL: keyFieldPath + "/" + fieldID + "/suggest",
		KeyField:   s.views.KeyFieldMount(keyStreamPath+"?"+q.Encode(), initialKey),
		Translate:  translator(s.tr, lang),
	}
}

func (s *OnboardingService) newPage(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.NewOrganizationPage(s.formParams(i18n.GetLocale(ctx), "", "")))
}

type keyStreamRequest struct {
	FieldID string `query:"field"`
	Initial string `query:"initial"`
}

// keyStream mounts a key field for the lifetime of the stream. Every state
// change is pushed as a re-rendered field, every reported key as signals.
func (s *OnboardingService) keyStream(ctx handler.Context, req keyStreamRequest) handler.Response {
	id, err := uuid.Parse(req.FieldID)
	if err != nil {
		return handler.Error(ErrInvalidField)
	}
	if _, err := s.registry.Get(id); err == nil {
		return handler.Error(ErrFieldExists)
	}

	lang := i18n.GetLocale(ctx)
	t := translator(s.tr, lang)
	log := s.log.With(logger.FieldID(id), logger.Locale(lang))

	return handler.SSE(func(stream handler.StreamContext) error {
		events := newFieldEvents()
		opts := []orgkey.Option{
			orgkey.WithDebounce(s.cfg.KeyDebounce),
			orgkey.WithTranslator(s.tr.Func(lang)),
			orgkey.WithLogger(log),
			orgkey.WithStateHook(events.pushState),
		}
		if req.Initial != "" {
			opts = append(opts, orgkey.WithInitialValue(req.Initial))
		}

		field := orgkey.New(stream, s.orgs, events.pushChange, opts...)
		defer field.Close()

		if err := s.registry.Add(id, field); err != nil {
			return err
		}
		defer s.registry.Remove(id, field)

		log.DebugContext(stream, "key field mounted")
		defer log.DebugContext(context.WithoutCancel(stream), "key field unmounted")

		render := func(st orgkey.State) error {
			return stream.SendComponent(s.views.KeyInput(views.KeyInputParams{
				FieldID:   id.String(),
				State:     st,
				HostURL:   s.cfg.HostURL,
				BasePath:  keyFieldPath,
				Translate: t,
			}))
		}
		if err := render(field.State()); err != nil {
			return err
		}

		for {
			select {
			case <-field.Done():
				return nil
			case <-events.notify:
				st, sig := events.take()
				if st != nil {
					if err := render(*st); err != nil {
						return err
					}
				}
				if sig != nil {
					if err := stream.SendSignals(sig); err != nil {
						return err
					}
				}
			}
		}
	})
}

type keyEventRequest struct {
	FieldID string `path:"id"`
}

type keyInputRequest struct {
	FieldID string `path:"id" json:"-"`
	Value   string `json:"orgKeyInput"`
}

func (s *OnboardingService) field(rawID string) (*orgkey.Field, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidField
	}
	return s.registry.Get(id)
}

func (s *OnboardingService) keyInput(ctx handler.Context, req keyInputRequest) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Error(handler.ErrBadRequest)
	}
	f, err := s.field(req.FieldID)
	if err != nil {
		return handler.Error(err)
	}
	f.Input(req.Value)
	return handler.Empty()
}

func (s *OnboardingService) keyFocus(_ handler.Context, req keyEventRequest) handler.Response {
	f, err := s.field(req.FieldID)
	if err != nil {
		return handler.Error(err)
	}
	f.Focus()
	return handler.Empty()
}

func (s *OnboardingService) keyBlur(_ handler.Context, req keyEventRequest) handler.Response {
	f, err := s.field(req.FieldID)
	if err != nil {
		return handler.Error(err)
	}
	f.Blur()
	return handler.Empty()
}

type keySuggestRequest struct {
	FieldID string `path:"id" json:"-"`
	Name    string `json:"orgName"`
}

// keySuggest fills an untouched key field with a free key derived from the
// organization name. Keys the user has typed are never replaced.
func (s *OnboardingService) keySuggest(ctx handler.Context, req keySuggestRequest) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Error(handler.ErrBadRequest)
	}
	f, err := s.field(req.FieldID)
	if err != nil {
		return handler.Error(err)
	}
	if f.ReadOnly() || f.State().Touched {
		return handler.Empty()
	}

	key, err := s.orgs.SuggestKey(ctx, req.Name)
	if err != nil {
		s.log.WarnContext(ctx, "no key suggestion", logger.Error(err))
		return handler.Empty()
	}

	// The user may have typed while the suggestion was computed.
	if !f.InputIfUntouched(key) {
		return handler.Empty()
	}
	return handler.SSE(func(stream handler.StreamContext) error {
		return stream.SendSignals(map[string]string{"orgKeyInput": key})
	})
}

type createRequest struct {
	Name string `form:"name"`
	Key  string `form:"key"`
}

// create stores the organization and redirects to its page. The key is
// checked again here: the field may have reported an optimistic result.
func (s *OnboardingService) create(ctx handler.Context, req createRequest) handler.Response {
	org, err := s.orgs.Create(ctx, orgsvc.CreateParams{Name: req.Name, Key: req.Key})
	if err == nil {
		return handler.Redirect(basePath + "/" + url.PathEscape(org.Key))
	}

	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		return handler.Error(err)
	}

	lang := i18n.GetLocale(ctx)
	params := s.formParams(lang, req.Name, req.Key)
	if ve, ok := verrs.First("name"); ok {
		params.NameError = validationMessage(params.Translate, ve)
	}
	if ve, ok := verrs.First("key"); ok {
		params.KeyError = validationMessage(params.Translate, ve)
	}

	s.log.InfoContext(ctx, "organization rejected",
		logger.Event("organization.rejected"),
		logger.OrgKey(req.Key),
		slog.Any("fields", verrs.Fields()),
		slog.Bool("key_taken", errors.Is(err, orgsvc.ErrKeyTaken)),
	)

	return handler.TemplPartialWithStatus(http.StatusUnprocessableEntity,
		s.views.NewOrganizationForm(params),
		s.views.NewOrganizationPage(params),
		handler.WithTarget("#organization-form"),
	)
}

type showRequest struct {
	Key string `path:"key"`
}

// show renders an organization with its key in a read-only field.
func (s *OnboardingService) show(ctx handler.Context, req showRequest) handler.Response {
	org, err := s.orgs.Get(ctx, req.Key)
	if errors.Is(err, orgsvc.ErrNotFound) {
		return handler.Error(handler.ErrNotFound)
	}
	if err != nil {
		return handler.Error(err)
	}

	field := orgkey.New(ctx, nil, nil,
		orgkey.WithInitialValue(org.Key),
		orgkey.WithReadOnly(true),
	)
	defer field.Close()

	lang := i18n.GetLocale(ctx)
	t := translator(s.tr, lang)
	return handler.Templ(s.views.OrganizationPage(views.OrganizationPageParams{
		Lang:      lang,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
		KeyField: s.views.KeyInput(views.KeyInputParams{
			State:     field.State(),
			ReadOnly:  field.ReadOnly(),
			HostURL:   s.cfg.HostURL,
			Translate: t,
		}),
		Translate: t,
	}))
}
