package errorreport

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// digest produces a stable grouping hash for an error. Errors with the same
// message on the same route collapse into one group on the backend.
func digest(message string, route RouteInfo) string {
	h := xxhash.New()
	_, _ = h.WriteString(message)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(route.RoutePath)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(route.RouteType)
	return strconv.FormatUint(h.Sum64(), 16)
}
