// Package binder fills request structs from form bodies, query strings, path
// parameters and datastar signals for handler.Wrap.
//
//	type createRequest struct {
//	    Name string `form:"name"`
//	    Key  string `form:"key"`
//	}
//
// Binders return ErrBinderNotApplicable when the request does not carry
// their source, so several can be chained on one endpoint.
package binder
