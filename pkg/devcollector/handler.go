// Package devcollector is a local development backend for the
// instrumentation layer: it accepts posted analytics event batches and
// error captures and broadcasts them to live-tail WebSocket clients.
// Nothing is persisted.
package devcollector

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/events"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/errorreport"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/httpx"
)

// MaxEventsPerRequest caps the batch size a single request may carry.
const MaxEventsPerRequest = 1000

// Handler handles event and error ingestion for the dev collector
type Handler struct {
	hub *Hub
}

// NewHandler creates a handler broadcasting through the given hub
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// EventsRequest is the analytics batch payload
type EventsRequest struct {
	Events []events.Event `json:"events"`
}

// IngestResponse acknowledges an accepted batch
type IngestResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// streamMessage is what live tails receive for each accepted record
type streamMessage struct {
	Kind    string      `json:"kind"` // "event" or "error"
	Payload interface{} `json:"payload"`
}

// HandleEvents handles POST /v1/events
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	var req EventsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Events) > MaxEventsPerRequest {
		httpx.RespondError(w, http.StatusBadRequest, "too many events in one batch")
		return
	}

	for _, ev := range req.Events {
		if ev.Type == "" {
			httpx.RespondError(w, http.StatusBadRequest, "invalid event: missing type")
			return
		}
	}

	if h.hub.HasClients() {
		for _, ev := range req.Events {
			_ = h.hub.Broadcast(streamMessage{Kind: "event", Payload: ev})
		}
	}

	httpx.RespondJSON(w, http.StatusAccepted, IngestResponse{
		Status: "accepted",
		Count:  len(req.Events),
	})
}

// HandleErrors handles POST /v1/errors
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request) {
	var event errorreport.CaptureEvent
	if err := httpx.DecodeJSON(r, &event); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if event.Error.Message == "" {
		httpx.RespondError(w, http.StatusBadRequest, "invalid capture: missing error message")
		return
	}

	if h.hub.HasClients() {
		_ = h.hub.Broadcast(streamMessage{Kind: "error", Payload: event})
	}

	httpx.RespondJSON(w, http.StatusAccepted, IngestResponse{
		Status: "accepted",
		Count:  1,
	})
}

// Routes registers the collector endpoints on the router
func (h *Handler) Routes(router *mux.Router) {
	router.HandleFunc("/v1/events", h.HandleEvents).Methods(http.MethodPost)
	router.HandleFunc("/v1/errors", h.HandleErrors).Methods(http.MethodPost)
	router.HandleFunc("/v1/stream", h.hub.HandleStream).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
}
