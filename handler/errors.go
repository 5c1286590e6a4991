package handler

import (
	"errors"
	"net/http"
)

// HTTPError carries a status code and a translation key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "errors.bad_request"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "errors.not_found"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "errors.unprocessable_entity"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "errors.too_many_requests"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "errors.internal"}

	ErrNilResponse = errors.New("handler returned nil response")
)

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the error handler instead of rendering anything.
func Error(err error) Response {
	return errorResponse{err: err}
}
