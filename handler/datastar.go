package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// DataStarQueryParam carries the signals of datastar GET requests.
const DataStarQueryParam = "datastar"

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was issued by the datastar client and expects
// an SSE response.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}
