package handler

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is the Context of a long-lived SSE stream.
type StreamContext interface {
	Context
	SendComponent(component TemplComponent, opts ...TemplOption) error
	SendSignals(signals any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

// SendSignals merges signals, any JSON-encodable value, into the client store.
func (c *streamContext) SendSignals(signals any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

type sseResponse struct {
	handler func(StreamContext) error
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "errors.sse_required")
	}
	return s.handler(&streamContext{
		Context: NewContext(w, r),
		sse:     datastar.NewSSE(w, r),
	})
}

// SSE opens a datastar stream and runs handler for its lifetime. The stream
// ends when handler returns.
func SSE(handler func(StreamContext) error) Response {
	return sseResponse{handler: handler}
}
