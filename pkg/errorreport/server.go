package errorreport

import (
	"context"
	"time"
)

const serverSendTimeout = 10 * time.Second

// initServer builds the server-runtime reporting client: a full HTTP client
// with process state attached to every capture event.
func initServer(dsn string) (Client, error) {
	base, err := newHTTPClient(dsn, serverSendTimeout)
	if err != nil {
		return nil, err
	}
	return &serverClient{base: base, startTime: time.Now()}, nil
}

// serverClient decorates the base client with system state capture.
type serverClient struct {
	base      Client
	startTime time.Time
}

func (c *serverClient) CaptureError(ctx context.Context, event CaptureEvent) error {
	event.System = captureSystemState(c.startTime)
	return c.base.CaptureError(ctx, event)
}
