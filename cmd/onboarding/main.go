// Command onboarding serves the organization onboarding flow.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/onboarding/handler"
	"github.com/dmitrymomot/onboarding/locales"
	"github.com/dmitrymomot/onboarding/modules/organization"
	"github.com/dmitrymomot/onboarding/pkg/clientip"
	"github.com/dmitrymomot/onboarding/pkg/config"
	"github.com/dmitrymomot/onboarding/pkg/environment"
	"github.com/dmitrymomot/onboarding/pkg/httpserver"
	"github.com/dmitrymomot/onboarding/pkg/i18n"
	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/pkg/ratelimiter"
	"github.com/dmitrymomot/onboarding/pkg/requestid"
	orgsvc "github.com/dmitrymomot/onboarding/svc/organization"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("onboarding stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app AppConfig
	if err := config.Load(&app); err != nil {
		return err
	}
	env := environment.Parse(app.Env)

	log := logger.New(
		logger.WithEnvironment(env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
			i18n.LoggerExtractor(),
			orgsvc.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	tr, err := locales.NewTranslator(ctx,
		i18n.WithDefaultLanguage(app.DefaultLang),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(env != environment.Production),
	)
	if err != nil {
		return err
	}

	storage, storageBackend, err := openStorage(ctx, app.Storage, log)
	if err != nil {
		return err
	}
	cache, cacheBackend, err := openCache(ctx, app, log)
	if err != nil {
		closeBackends(ctx, log, storageBackend)
		return err
	}
	defer closeBackends(ctx, log, storageBackend, cacheBackend)

	svc := orgsvc.NewService(storage,
		orgsvc.WithCache(cache),
		orgsvc.WithLogger(log),
	)

	limiter, stopLimiter, err := openRateLimiter(ctx, cacheBackend, log)
	if err != nil {
		return err
	}
	defer stopLimiter()

	var orgCfg organization.Config
	if err := config.Load(&orgCfg); err != nil {
		return err
	}

	apiLimit := ratelimiter.Middleware(limiter, ratelimiter.ByClientIP(),
		ratelimiter.WithLogger(log),
		ratelimiter.WithLimitedHandler(tooManyRequests()),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(clientip.NewResolver(clientip.WithTrustedProxies(app.TrustedProxies...))))
	r.Use(environment.Middleware(env))
	r.Use(i18n.Middleware(tr))

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, healthChecks(storageBackend, cacheBackend)...))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/organizations/new", http.StatusFound)
	})
	r.Mount("/", organization.Router(organization.RouterOptions{
		Onboarding:     organization.NewOnboardingService(orgCfg, svc, tr, organization.DefaultViews(), log),
		API:            organization.NewAPIService(svc),
		APIMiddlewares: []func(http.Handler) http.Handler{apiLimit},
	}))

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	log.InfoContext(ctx, "starting onboarding",
		slog.String("storage", app.Storage),
		slog.String("cache", app.Cache),
		slog.String("public_url", orgCfg.HostURL),
	)
	return httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

// tooManyRequests answers rate limited API calls with the JSON error envelope.
func tooManyRequests() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrTooManyRequests).Render(w, r)
	})
}

func healthChecks(backends ...*backend) []func(context.Context) error {
	var checks []func(context.Context) error
	for _, b := range backends {
		if b != nil && b.health != nil {
			checks = append(checks, b.health)
		}
	}
	return checks
}

func closeBackends(ctx context.Context, log *slog.Logger, backends ...*backend) {
	ctx = context.WithoutCancel(ctx)
	for _, b := range backends {
		if b == nil || b.close == nil {
			continue
		}
		if err := b.close(ctx); err != nil {
			log.ErrorContext(ctx, "failed to close backend", logger.Error(err))
		}
	}
}
