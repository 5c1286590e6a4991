// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a request struct filled by binders
// (see pkg/binder) and returns a Response:
//
//	type createRequest struct {
//	    Name string `form:"name"`
//	    Key  string `form:"key"`
//	}
//
//	r.Post("/organizations", handler.Wrap(h.create,
//	    handler.WithBinders[handler.Context, createRequest](binder.Form()),
//	    handler.WithErrorHandler[handler.Context, createRequest](errHandler),
//	))
//
// Responses cover HTML (Templ, TemplPartial, TemplWithStatus), JSON,
// redirects and long-lived datastar SSE streams (SSE). Templ responses patch
// the component into the page when the request comes from the datastar client
// and render a full document otherwise.
package handler
