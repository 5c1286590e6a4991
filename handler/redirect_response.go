package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url string
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, http.StatusSeeOther)
	return nil
}

// Redirect answers 303 See Other, or a datastar redirect over SSE.
func Redirect(url string) Response {
	return redirectResponse{url: url}
}

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}
