package track

import "sync"

// IdentityReconciler maps auth-state changes onto identify/reset calls.
// Exactly one call fires per genuine transition; observing the same
// identity again is a no-op, so re-renders and repeated auth callbacks
// never duplicate identify events.
type IdentityReconciler struct {
	analytics Analytics

	mu         sync.Mutex
	identified bool
	lastUserID string
}

// NewIdentityReconciler creates a reconciler emitting through the given
// client. Pass nil to disable.
func NewIdentityReconciler(analytics Analytics) *IdentityReconciler {
	return &IdentityReconciler{analytics: analytics}
}

// Observe reconciles the newly resolved identity against the last one.
// A nil user means signed out. Emission is a non-blocking enqueue on the
// analytics client, so navigation is never held up.
func (r *IdentityReconciler) Observe(user *User) {
	if r.analytics == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case user == nil:
		if !r.identified {
			return
		}
		r.analytics.Reset()
		r.identified = false
		r.lastUserID = ""
	default:
		if r.identified && r.lastUserID == user.ID {
			return
		}
		r.analytics.Identify(user.ID, user.Traits())
		r.identified = true
		r.lastUserID = user.ID
	}
}
