package errorreport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client delivers capture events to the reporting backend. Implementations
// must be safe for concurrent use; delivery failures are the caller's
// problem to swallow, never to propagate into request handling.
type Client interface {
	CaptureError(ctx context.Context, event CaptureEvent) error
}

// httpClient posts capture events to the configured DSN.
type httpClient struct {
	dsn    string
	client *http.Client
}

func newHTTPClient(dsn string, timeout time.Duration) (*httpClient, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	return &httpClient{
		dsn:    dsn,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (c *httpClient) CaptureError(ctx context.Context, event CaptureEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal capture event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.dsn, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}
