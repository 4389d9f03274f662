package errorreport

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/config"
)

// captureTimeout bounds a single capture delivery regardless of runtime.
// Each runtime's client carries its own, tighter send timeout underneath.
const captureTimeout = 10 * time.Second

// Hook is the error-capture function handed to the hosting framework. It
// never panics and never returns an error: a failure inside reporting is
// logged and swallowed, not propagated into the request path it observes.
type Hook func(err error, request RequestInfo, route RouteInfo)

// Reporter state machine. There is no way back to stateUnregistered once
// registration completed or the reporter went inert.
type state int

const (
	stateUnregistered state = iota
	stateInert
	stateRegistering
	stateRegistered
)

// Reporter routes runtime errors to the reporting backend. Register runs
// once at process startup and, based on the runtime kind, takes exactly one
// of the two initialization paths. When error reporting is not configured
// the reporter goes inert and Hook returns nil, so callers install no
// capture hook at all and pay no per-request cost.
type Reporter struct {
	dsn   string
	gates config.Gates

	mu      sync.Mutex
	state   state
	runtime RuntimeKind
	client  Client

	// init paths, swapped in tests to observe which one loads.
	initServer func(dsn string) (Client, error)
	initEdge   func(dsn string) (Client, error)
}

// NewReporter creates a reporter for the given configuration snapshot.
func NewReporter(cfg config.Config) *Reporter {
	return &Reporter{
		dsn:        cfg.ErrorReportingDSN,
		gates:      config.NewGates(cfg),
		initServer: initServer,
		initEdge:   initEdge,
	}
}

// Register initializes the reporter for the given runtime. Calling it
// again after a completed registration (or on an inert reporter) is a
// no-op, never an error. A failed initialization leaves the reporter
// unregistered so a later Register can retry.
func (r *Reporter) Register(kind RuntimeKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateInert || r.state == stateRegistered {
		return nil
	}

	if !r.gates.ErrorReportingEnabled() {
		r.state = stateInert
		return nil
	}

	r.state = stateRegistering

	var client Client
	var err error
	switch kind {
	case RuntimeServer:
		client, err = r.initServer(r.dsn)
	case RuntimeEdge:
		client, err = r.initEdge(r.dsn)
	default:
		r.state = stateUnregistered
		return fmt.Errorf("unknown runtime kind %q", kind)
	}
	if err != nil {
		r.state = stateUnregistered
		return fmt.Errorf("init %s error reporting: %w", kind, err)
	}

	r.client = client
	r.runtime = kind
	r.state = stateRegistered
	return nil
}

// Hook returns the error-capture hook, or nil when the reporter is inert
// or was never registered. The returned hook closes over an immutable
// client snapshot and keeps no per-invocation shared state, so concurrent
// calls for independent requests are safe.
func (r *Reporter) Hook() Hook {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateRegistered {
		return nil
	}

	client := r.client
	kind := r.runtime
	return func(err error, request RequestInfo, route RouteInfo) {
		capture(client, kind, err, request, route)
	}
}

// OnError captures a single error if the reporter is registered. Safe to
// call concurrently; never panics.
func (r *Reporter) OnError(err error, request RequestInfo, route RouteInfo) {
	if hook := r.Hook(); hook != nil {
		hook(err, request, route)
	}
}

func capture(client Client, kind RuntimeKind, err error, request RequestInfo, route RouteInfo) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("error reporting panicked, dropping capture: %v", rec)
		}
	}()

	if err == nil {
		return
	}

	event := CaptureEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Runtime:   kind,
		Error: ErrorInfo{
			Digest:  digest(err.Error(), route),
			Message: err.Error(),
			Stack:   string(debug.Stack()),
		},
		Request: request,
		Route:   route,
	}

	ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
	defer cancel()

	if cerr := client.CaptureError(ctx, event); cerr != nil {
		log.Printf("error report dropped: %v", cerr)
	}
}
