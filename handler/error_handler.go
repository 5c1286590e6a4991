package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/onboarding/pkg/logger"
	"github.com/dmitrymomot/onboarding/pkg/requestid"
	"github.com/dmitrymomot/onboarding/pkg/validator"
)

type ErrorPageParams struct {
	StatusCode int
	MessageKey string
	RequestID  string
	RetryURL   string
}

type ErrorToastParams struct {
	MessageKey string
	Type       string // "error" or "warning"
	RequestID  string
}

// ErrorHandlerConfig selects how errors are shown: a full page for plain
// requests, a toast patched into ToastTarget for datastar requests.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string
}

type errorInfo struct {
	status int
	key    string
}

func classifyError(err error) errorInfo {
	var httpErr HTTPError
	switch {
	case validator.IsValidationError(err):
		return errorInfo{status: ErrUnprocessableEntity.Code, key: ErrUnprocessableEntity.Key}
	case errors.As(err, &httpErr):
		return errorInfo{status: httpErr.Code, key: httpErr.Key}
	default:
		return errorInfo{status: ErrInternalServerError.Code, key: ErrInternalServerError.Key}
	}
}

// NewErrorHandler logs err (warn for 4xx, error for 5xx) and renders the
// configured page or toast. Missing components fall back to http.Error.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		level := slog.LevelError
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("error_handler"),
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if IsDataStar(r) && cfg.ErrorToast != nil {
			typ := "error"
			if level == slog.LevelWarn {
				typ = "warning"
			}
			resp := Templ(cfg.ErrorToast(ErrorToastParams{MessageKey: info.key, Type: typ, RequestID: reqID}),
				WithTarget(cfg.ToastTarget),
				WithPatchMode(PatchPrepend),
			)
			if rerr := resp.Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, info.key, info.status)
			return
		}

		page := cfg.ErrorPage(ErrorPageParams{
			StatusCode: info.status,
			MessageKey: info.key,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(info.status)
		if rerr := page.Render(r.Context(), w); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(rerr))
		}
	}
}
