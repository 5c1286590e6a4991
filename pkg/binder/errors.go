package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to skip a binder that does not
	// match the request, e.g. Form on a GET request.
	ErrBinderNotApplicable = errors.New("binder not applicable to request")

	ErrInvalidForm     = errors.New("failed to parse form data")
	ErrInvalidQuery    = errors.New("failed to parse query parameters")
	ErrInvalidPath     = errors.New("failed to parse path parameters")
	ErrInvalidSignals  = errors.New("failed to read datastar signals")
	ErrUnsupportedType = errors.New("unsupported field type")
	ErrTargetNotStruct = errors.New("bind target must be a pointer to a struct")
)
