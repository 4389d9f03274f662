package events

import "time"

// Type classifies an analytics event.
type Type string

const (
	PageType     Type = "page"
	TrackType    Type = "track"
	IdentifyType Type = "identify"
	ResetType    Type = "reset"
)

// Event is a single analytics record sent to the backend.
type Event struct {
	ID          string            `json:"id"`
	Type        Type              `json:"type"`
	Name        string            `json:"name,omitempty"`
	App         string            `json:"app,omitempty"`
	AnonymousID string            `json:"anonymous_id,omitempty"`
	UserID      string            `json:"user_id,omitempty"`
	URL         string            `json:"url,omitempty"`
	Value       float64           `json:"value,omitempty"`
	Traits      map[string]string `json:"traits,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}
