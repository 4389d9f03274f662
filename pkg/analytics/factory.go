package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/config"
)

// Factory owns the process-wide analytics client singleton. The client is
// constructed lazily on the first Get when analytics is enabled, and at
// most once per process: reconstructing it would open a duplicate delivery
// session against the backend. A failed construction is never cached; the
// next Get retries.
type Factory struct {
	cfg   config.Config
	gates config.Gates

	mu     sync.Mutex
	client *Client

	// construct is swapped in tests to observe construction attempts.
	construct func(ctx context.Context, cfg ClientConfig) (*Client, error)
}

// NewFactory creates a factory for the given configuration snapshot.
func NewFactory(cfg config.Config) *Factory {
	return &Factory{
		cfg:       cfg,
		gates:     config.NewGates(cfg),
		construct: startNewClient,
	}
}

// Get returns the shared client handle, constructing it on first call.
// It returns (nil, nil) without side effects when analytics is disabled.
// Concurrent first calls are serialized; all callers observe the same
// handle once construction has succeeded.
func (f *Factory) Get(ctx context.Context) (*Client, error) {
	if !f.gates.AnalyticsEnabled() {
		return nil, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.client != nil {
		return f.client, nil
	}

	client, err := f.construct(ctx, ClientConfig{
		App:        f.cfg.App,
		WriteKey:   f.cfg.AnalyticsWriteKey,
		Endpoint:   f.cfg.AnalyticsEndpoint,
		FlushEvery: 5 * time.Second,
	})
	if err != nil {
		// Not cached: the next Get retries construction.
		return nil, fmt.Errorf("construct analytics client: %w", err)
	}

	f.client = client
	return f.client, nil
}

// Close stops the client if one was ever constructed.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.client == nil {
		return nil
	}
	return f.client.Stop()
}

func startNewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	client, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Start(ctx); err != nil {
		return nil, err
	}
	return client, nil
}
