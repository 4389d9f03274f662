package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/batch"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/events"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/transport"
)

// ClientConfig holds configuration for the analytics client
type ClientConfig struct {
	App        string        `json:"app"`
	WriteKey   string        `json:"write_key"`
	Endpoint   string        `json:"endpoint"`
	FlushEvery time.Duration `json:"flush_every"`
}

// Client is the analytics client handle. A process holds at most one
// instance, owned by Factory; all event emitters share it. Once started it
// is effectively immutable, so concurrent use needs no locking here.
type Client struct {
	config      ClientConfig
	transport   transport.Transport
	batcher     *batch.Batcher
	anonymousID string

	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new analytics client
func New(cfg ClientConfig) (*Client, error) {
	if cfg.App == "" {
		return nil, fmt.Errorf("app name is required")
	}
	if cfg.WriteKey == "" {
		return nil, fmt.Errorf("write key is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:8080/v1/events"
	}
	if cfg.FlushEvery == 0 {
		cfg.FlushEvery = 5 * time.Second
	}

	trans, err := transport.NewHTTP(cfg.Endpoint, cfg.WriteKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	batcher := batch.New(trans, batch.Config{
		MaxBatchSize: 100,
		FlushEvery:   cfg.FlushEvery,
	})

	return &Client{
		config:      cfg,
		transport:   trans,
		batcher:     batcher,
		anonymousID: uuid.NewString(),
	}, nil
}

// Start begins event delivery
func (c *Client) Start(ctx context.Context) error {
	if c.started {
		return fmt.Errorf("client already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.started = true

	if err := c.batcher.Start(c.ctx); err != nil {
		return fmt.Errorf("failed to start batcher: %w", err)
	}

	return nil
}

// Stop stops the client and flushes remaining events
func (c *Client) Stop() error {
	if !c.started {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	if err := c.batcher.Stop(); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}

	c.started = false
	return nil
}

// Flush forces immediate delivery of buffered events
func (c *Client) Flush() error {
	if !c.started {
		return nil
	}
	return c.batcher.Flush()
}

// Page emits a page-view event for the given canonical URL
func (c *Client) Page(url string) {
	c.enqueue(events.Event{
		Type: events.PageType,
		URL:  url,
	})
}

// Track emits a named event with string properties
func (c *Client) Track(name string, properties map[string]string) {
	c.enqueue(events.Event{
		Type:       events.TrackType,
		Name:       name,
		Properties: properties,
	})
}

// TrackValue emits a named event carrying a numeric measurement
func (c *Client) TrackValue(name string, value float64, properties map[string]string) {
	c.enqueue(events.Event{
		Type:       events.TrackType,
		Name:       name,
		Value:      value,
		Properties: properties,
	})
}

// Identify binds subsequent events to a known user identity
func (c *Client) Identify(userID string, traits map[string]string) {
	c.enqueue(events.Event{
		Type:   events.IdentifyType,
		UserID: userID,
		Traits: traits,
	})
}

// Reset clears the user identity binding
func (c *Client) Reset() {
	c.enqueue(events.Event{
		Type: events.ResetType,
	})
}

// enqueue stamps shared fields and hands the event to the batcher.
// Events enqueued before Start are dropped.
func (c *Client) enqueue(event events.Event) {
	if !c.started {
		return
	}

	event.ID = uuid.NewString()
	event.App = c.config.App
	event.AnonymousID = c.anonymousID
	event.Timestamp = time.Now().UTC()

	c.batcher.Add(event)
}
