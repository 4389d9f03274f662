package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/config"
)

func TestGet_DisabledReturnsNil(t *testing.T) {
	var constructions atomic.Int32

	factory := NewFactory(config.Config{}) // no write key
	factory.construct = func(ctx context.Context, cfg ClientConfig) (*Client, error) {
		constructions.Add(1)
		return startNewClient(ctx, cfg)
	}

	for i := 0; i < 20; i++ {
		client, err := factory.Get(context.Background())
		require.NoError(t, err)
		require.Nil(t, client)
	}

	require.Equal(t, int32(0), constructions.Load(), "disabled factory must never construct")
}

func TestGet_ConstructsOnceUnderConcurrency(t *testing.T) {
	var constructions atomic.Int32

	factory := NewFactory(config.Config{
		App:               "test-app",
		AnalyticsWriteKey: "wk",
	})
	factory.construct = func(ctx context.Context, cfg ClientConfig) (*Client, error) {
		constructions.Add(1)
		return New(cfg)
	}

	const callers = 32
	handles := make([]*Client, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client, err := factory.Get(context.Background())
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			handles[i] = client
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), constructions.Load(), "expected exactly one construction")
	for i := 1; i < callers; i++ {
		require.Same(t, handles[0], handles[i], "all callers must share one handle")
	}
}

func TestGet_ConstructionFailureNotCached(t *testing.T) {
	var constructions atomic.Int32
	failFirst := true

	factory := NewFactory(config.Config{
		App:               "test-app",
		AnalyticsWriteKey: "wk",
	})
	factory.construct = func(ctx context.Context, cfg ClientConfig) (*Client, error) {
		constructions.Add(1)
		if failFirst {
			failFirst = false
			return nil, errors.New("backend unreachable")
		}
		return New(cfg)
	}

	client, err := factory.Get(context.Background())
	require.Error(t, err)
	require.Nil(t, client)

	// Failure was not cached: the next call retries and succeeds.
	client, err = factory.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, client)

	// Success IS cached: no third construction.
	again, err := factory.Get(context.Background())
	require.NoError(t, err)
	require.Same(t, client, again)
	require.Equal(t, int32(2), constructions.Load())
}
