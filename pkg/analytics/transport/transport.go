package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/events"
)

// Transport defines the interface for delivering analytics events
type Transport interface {
	Send(ctx context.Context, batch []events.Event) error
}

// HTTPTransport implements Transport using HTTP
type HTTPTransport struct {
	endpoint string
	writeKey string
	client   *http.Client
}

// NewHTTP creates a new HTTP transport
func NewHTTP(endpoint, writeKey string) (*HTTPTransport, error) {
	return &HTTPTransport{
		endpoint: endpoint,
		writeKey: writeKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts an event batch to the collector endpoint
func (t *HTTPTransport) Send(ctx context.Context, batch []events.Event) error {
	if len(batch) == 0 {
		return nil
	}

	payload := map[string]interface{}{
		"events": batch,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if t.writeKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.writeKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}
