package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/onboarding/pkg/validator"
)

// JSONResponse is the envelope of every JSON body.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON responds 200 with v as data.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
}

// JSONError maps err to a status and error detail: validation errors become
// 422 with per-field details, HTTPError keeps its code, anything else is 500.
func JSONError(err error) Response {
	resp := jsonResponse{status: http.StatusInternalServerError}
	detail := &ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(http.StatusInternalServerError)}

	var httpErr HTTPError
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		resp.status = http.StatusUnprocessableEntity
		detail.Code = ErrUnprocessableEntity.Key
		detail.Message = "validation failed"
		detail.Details = make(map[string][]string)
		for _, field := range verrs.Fields() {
			detail.Details[field] = verrs.Get(field)
		}
	} else if errors.As(err, &httpErr) {
		resp.status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(httpErr.Code)
	}

	resp.body.Error = detail
	return resp
}
