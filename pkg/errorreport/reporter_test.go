package errorreport

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/config"
)

// fakeClient records capture events and optionally misbehaves.
type fakeClient struct {
	mu         sync.Mutex
	events     []CaptureEvent
	deadlines  []bool
	captureErr error
	panics     bool
}

func (c *fakeClient) CaptureError(ctx context.Context, event CaptureEvent) error {
	if c.panics {
		panic("reporting client blew up")
	}
	_, hasDeadline := ctx.Deadline()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	c.deadlines = append(c.deadlines, hasDeadline)
	return c.captureErr
}

func (c *fakeClient) captured() []CaptureEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CaptureEvent, len(c.events))
	copy(out, c.events)
	return out
}

// newTestReporter returns a reporter whose init paths count their loads and
// hand out the given client.
func newTestReporter(dsn string, client Client) (*Reporter, *atomic.Int32, *atomic.Int32) {
	var serverLoads, edgeLoads atomic.Int32

	r := NewReporter(config.Config{ErrorReportingDSN: dsn})
	r.initServer = func(string) (Client, error) {
		serverLoads.Add(1)
		return client, nil
	}
	r.initEdge = func(string) (Client, error) {
		edgeLoads.Add(1)
		return client, nil
	}
	return r, &serverLoads, &edgeLoads
}

func TestRegister_ServerLoadsOnlyServerPath(t *testing.T) {
	r, serverLoads, edgeLoads := newTestReporter("https://dsn", &fakeClient{})

	require.NoError(t, r.Register(RuntimeServer))
	require.Equal(t, int32(1), serverLoads.Load())
	require.Equal(t, int32(0), edgeLoads.Load())
}

func TestRegister_EdgeLoadsOnlyEdgePath(t *testing.T) {
	r, serverLoads, edgeLoads := newTestReporter("https://dsn", &fakeClient{})

	require.NoError(t, r.Register(RuntimeEdge))
	require.Equal(t, int32(0), serverLoads.Load())
	require.Equal(t, int32(1), edgeLoads.Load())
}

func TestRegister_DisabledGoesInert(t *testing.T) {
	r, serverLoads, edgeLoads := newTestReporter("", &fakeClient{}) // no DSN

	require.NoError(t, r.Register(RuntimeServer))
	require.Equal(t, int32(0), serverLoads.Load())
	require.Equal(t, int32(0), edgeLoads.Load())

	// The hook is entirely absent, not merely inert.
	require.Nil(t, r.Hook())
}

func TestRegister_DuplicateIsNoop(t *testing.T) {
	r, serverLoads, _ := newTestReporter("https://dsn", &fakeClient{})

	require.NoError(t, r.Register(RuntimeServer))
	require.NoError(t, r.Register(RuntimeServer))
	require.NoError(t, r.Register(RuntimeEdge)) // re-registration unsupported, still a no-op

	require.Equal(t, int32(1), serverLoads.Load())
}

func TestRegister_InitFailureRetries(t *testing.T) {
	var attempts atomic.Int32
	client := &fakeClient{}

	r := NewReporter(config.Config{ErrorReportingDSN: "https://dsn"})
	r.initServer = func(string) (Client, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("dial failed")
		}
		return client, nil
	}

	require.Error(t, r.Register(RuntimeServer))
	require.Nil(t, r.Hook(), "failed registration must not expose a hook")

	require.NoError(t, r.Register(RuntimeServer))
	require.NotNil(t, r.Hook())
}

func TestRegister_UnknownKind(t *testing.T) {
	r, _, _ := newTestReporter("https://dsn", &fakeClient{})
	require.Error(t, r.Register(RuntimeKind("browser")))
}

func TestOnError_ForwardsEvent(t *testing.T) {
	client := &fakeClient{}
	r, _, _ := newTestReporter("https://dsn", client)
	require.NoError(t, r.Register(RuntimeServer))

	r.OnError(errors.New("boom"),
		RequestInfo{Path: "/checkout", Method: "POST"},
		RouteInfo{RoutePath: "/checkout"})

	events := client.captured()
	require.Len(t, events, 1)
	require.Equal(t, "boom", events[0].Error.Message)
	require.NotEmpty(t, events[0].Error.Digest)
	require.NotEmpty(t, events[0].EventID)
	require.Equal(t, RuntimeServer, events[0].Runtime)
	require.Equal(t, "/checkout", events[0].Request.Path)
}

func TestOnError_BoundsDeliveryForBothRuntimes(t *testing.T) {
	for _, kind := range []RuntimeKind{RuntimeServer, RuntimeEdge} {
		client := &fakeClient{}
		r, _, _ := newTestReporter("https://dsn", client)
		require.NoError(t, r.Register(kind))

		r.OnError(errors.New("boom"), RequestInfo{}, RouteInfo{})

		client.mu.Lock()
		deadlines := client.deadlines
		client.mu.Unlock()
		require.Len(t, deadlines, 1)
		require.True(t, deadlines[0], "%s capture must carry a delivery deadline", kind)
	}
}

func TestOnError_SwallowsClientPanic(t *testing.T) {
	client := &fakeClient{panics: true}
	r, _, _ := newTestReporter("https://dsn", client)
	require.NoError(t, r.Register(RuntimeServer))

	require.NotPanics(t, func() {
		r.OnError(errors.New("boom"), RequestInfo{}, RouteInfo{})
	})
}

func TestOnError_SwallowsClientError(t *testing.T) {
	client := &fakeClient{captureErr: errors.New("delivery failed")}
	r, _, _ := newTestReporter("https://dsn", client)
	require.NoError(t, r.Register(RuntimeServer))

	require.NotPanics(t, func() {
		r.OnError(errors.New("boom"), RequestInfo{}, RouteInfo{})
	})
}

func TestOnError_BeforeRegisterIsNoop(t *testing.T) {
	client := &fakeClient{}
	r, _, _ := newTestReporter("https://dsn", client)

	r.OnError(errors.New("boom"), RequestInfo{}, RouteInfo{})
	require.Empty(t, client.captured())
}

func TestOnError_Concurrent(t *testing.T) {
	client := &fakeClient{}
	r, _, _ := newTestReporter("https://dsn", client)
	require.NoError(t, r.Register(RuntimeEdge))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.OnError(errors.New("boom"), RequestInfo{Path: "/a"}, RouteInfo{})
		}()
	}
	wg.Wait()

	require.Len(t, client.captured(), 16)
}

func TestParseRuntimeKind(t *testing.T) {
	kind, err := ParseRuntimeKind("server")
	require.NoError(t, err)
	require.Equal(t, RuntimeServer, kind)

	kind, err = ParseRuntimeKind("edge")
	require.NoError(t, err)
	require.Equal(t, RuntimeEdge, kind)

	_, err = ParseRuntimeKind("browser")
	require.Error(t, err)
}
