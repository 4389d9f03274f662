package track

import "sync"

// NavigationState is the transient (path, query) pair recomputed on every
// navigation settle.
type NavigationState struct {
	Path  string
	Query string
}

// CanonicalURL derives the page-view URL: the query string is appended
// with "?" only when non-empty.
func (s NavigationState) CanonicalURL() string {
	if s.Query == "" {
		return s.Path
	}
	return s.Path + "?" + s.Query
}

// PageViewTracker emits one page-view event per navigation settle. Repeated
// observations of an unchanged (path, query) pair do not re-emit, so
// re-renders of the same route are free.
//
// The tracker may be activated late relative to the rest of the page (a
// deferred mount). Activate reads the CURRENT navigation state from its
// source at that moment, so the first navigation is never lost to a stale
// value captured when the tracker was constructed.
type PageViewTracker struct {
	analytics Analytics
	source    func() NavigationState

	mu     sync.Mutex
	active bool
	seen   bool
	last   NavigationState
}

// NewPageViewTracker creates a tracker. The source callback must return
// the current navigation state; it is consulted on activation. Pass a nil
// Analytics to disable.
func NewPageViewTracker(analytics Analytics, source func() NavigationState) *PageViewTracker {
	return &PageViewTracker{analytics: analytics, source: source}
}

// Activate begins tracking and immediately reconciles against the current
// navigation state. Calling it again is a no-op.
func (t *PageViewTracker) Activate() {
	if t.analytics == nil || t.source == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return
	}
	t.active = true
	t.observeLocked(t.source())
}

// Observe records a navigation settle. Before activation observations are
// ignored; Activate picks up the current state from the source instead.
func (t *PageViewTracker) Observe(state NavigationState) {
	if t.analytics == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}
	t.observeLocked(state)
}

func (t *PageViewTracker) observeLocked(state NavigationState) {
	if t.seen && t.last == state {
		return
	}
	t.analytics.Page(state.CanonicalURL())
	t.seen = true
	t.last = state
}
