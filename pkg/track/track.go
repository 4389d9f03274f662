// Package track contains the per-session event trackers: identity
// reconciliation, page-view tracking, and web-vitals collection. All three
// emit through the shared analytics client handle and degrade to no-ops
// when analytics is disabled (nil Analytics).
package track

import "time"

// Analytics is the slice of the analytics client the trackers emit through.
// A nil Analytics disables the tracker.
type Analytics interface {
	Page(url string)
	Identify(userID string, traits map[string]string)
	Reset()
	TrackValue(name string, value float64, properties map[string]string)
}

// User is the identity resolved from the auth provider.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Traits returns the analytics traits for the user.
func (u User) Traits() map[string]string {
	traits := map[string]string{
		"email": u.Email,
	}
	if !u.CreatedAt.IsZero() {
		traits["created_at"] = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return traits
}
