package errorreport

import "time"

const edgeSendTimeout = 3 * time.Second

// initEdge builds the edge-runtime reporting client. Edge isolates have no
// OS surface worth capturing and tight execution limits, so the client is
// the bare HTTP sender with a short delivery timeout.
func initEdge(dsn string) (Client, error) {
	return newHTTPClient(dsn, edgeSendTimeout)
}
