package errorreport

import "time"

// ErrorInfo describes the captured error itself.
type ErrorInfo struct {
	Digest  string `json:"digest"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// RequestInfo describes the request being handled when the error occurred.
type RequestInfo struct {
	Path    string            `json:"path"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
}

// RouteInfo carries routing metadata for the failing request.
type RouteInfo struct {
	RouterKind       string `json:"router_kind,omitempty"`
	RoutePath        string `json:"route_path,omitempty"`
	RouteType        string `json:"route_type,omitempty"`
	RenderSource     string `json:"render_source,omitempty"`
	RevalidateReason string `json:"revalidate_reason,omitempty"`
	RenderType       string `json:"render_type,omitempty"`
}

// CaptureEvent is the payload forwarded to the reporting backend for each
// captured error. Constructed per capture; nothing is retained locally.
type CaptureEvent struct {
	EventID   string       `json:"event_id"`
	Timestamp time.Time    `json:"timestamp"`
	Runtime   RuntimeKind  `json:"runtime"`
	Error     ErrorInfo    `json:"error"`
	Request   RequestInfo  `json:"request"`
	Route     RouteInfo    `json:"route"`
	System    *SystemState `json:"system,omitempty"`
}
