package errorreport

import "fmt"

// RuntimeKind identifies the execution environment, resolved once at
// process startup. It selects which of the two initialization paths the
// reporter takes; the two are mutually exclusive for a given process.
type RuntimeKind string

const (
	// RuntimeServer is a full server process with OS access.
	RuntimeServer RuntimeKind = "server"

	// RuntimeEdge is an isolated edge runtime: minimal client, no
	// OS-level state capture, tighter delivery timeout.
	RuntimeEdge RuntimeKind = "edge"
)

// ParseRuntimeKind parses the externally supplied runtime tag.
func ParseRuntimeKind(s string) (RuntimeKind, error) {
	switch RuntimeKind(s) {
	case RuntimeServer:
		return RuntimeServer, nil
	case RuntimeEdge:
		return RuntimeEdge, nil
	default:
		return "", fmt.Errorf("unknown runtime kind %q", s)
	}
}
