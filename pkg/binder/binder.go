package binder

import (
	"errors"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Form binds `form:"name"` fields from an urlencoded or multipart body.
// Requests with another content type are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
		default:
			return ErrBinderNotApplicable
		}

		err := bindValues(v, "form", func(name string) (string, bool) {
			vals, ok := r.PostForm[name]
			if !ok || len(vals) == 0 {
				return "", false
			}
			return vals[0], true
		})
		if err != nil {
			return errors.Join(ErrInvalidForm, err)
		}
		return nil
	}
}

// Query binds `query:"name"` fields from the URL query.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		err := bindValues(v, "query", func(name string) (string, bool) {
			if !q.Has(name) {
				return "", false
			}
			return q.Get(name), true
		})
		if err != nil {
			return errors.Join(ErrInvalidQuery, err)
		}
		return nil
	}
}

// Path binds `path:"name"` fields using the router's parameter extractor,
// e.g. chi.URLParam.
func Path(extract func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		err := bindValues(v, "path", func(name string) (string, bool) {
			val := extract(r, name)
			return val, val != ""
		})
		if err != nil {
			return errors.Join(ErrInvalidPath, err)
		}
		return nil
	}
}

// Signals decodes the datastar signal store into v using its json tags.
// Only datastar requests are applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Header.Get("Datastar-Request") != "true" && !r.URL.Query().Has("datastar") {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrInvalidSignals, err)
		}
		return nil
	}
}
