package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/events"
	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/analytics/transport"
)

// Config holds configuration for the batcher
type Config struct {
	MaxBatchSize int
	FlushEvery   time.Duration
}

// Batcher buffers analytics events and sends them periodically. Delivery
// failures drop the batch; there is no retry at this layer.
type Batcher struct {
	config    Config
	transport transport.Transport

	events []events.Event
	mu     sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	flushing atomic.Bool // Prevents concurrent flushes
}

// New creates a new batcher
func New(transport transport.Transport, config Config) *Batcher {
	return &Batcher{
		config:    config,
		transport: transport,
		events:    make([]events.Event, 0, config.MaxBatchSize),
		done:      make(chan struct{}),
	}
}

// Start starts the flush loop
func (b *Batcher) Start(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)

	go b.flushLoop()
	return nil
}

// Add buffers an event, flushing in the background when the batch is full.
// CompareAndSwap ensures only one flush goroutine runs at a time.
func (b *Batcher) Add(event events.Event) {
	b.mu.Lock()
	b.events = append(b.events, event)
	shouldFlush := len(b.events) >= b.config.MaxBatchSize
	b.mu.Unlock()

	if shouldFlush && b.flushing.CompareAndSwap(false, true) {
		go func() {
			b.flush()
			b.flushing.Store(false)
		}()
	}
}

// Flush sends all pending events synchronously
func (b *Batcher) Flush() error {
	b.mu.Lock()
	if len(b.events) == 0 {
		b.mu.Unlock()
		return nil
	}

	pending := make([]events.Event, len(b.events))
	copy(pending, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	return b.send(pending)
}

// Stop stops the flush loop and flushes remaining events
func (b *Batcher) Stop() error {
	if b.cancel == nil {
		// Never started; just drain whatever was buffered.
		return b.Flush()
	}
	b.cancel()

	// Wait for flush loop to finish
	<-b.done

	return b.Flush()
}

// flushLoop periodically flushes buffered events
func (b *Batcher) flushLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.config.FlushEvery)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			if b.flushing.CompareAndSwap(false, true) {
				b.flush()
				b.flushing.Store(false)
			}
		}
	}
}

// flush sends pending events without blocking the caller
func (b *Batcher) flush() {
	b.mu.Lock()
	if len(b.events) == 0 {
		b.mu.Unlock()
		return
	}

	pending := make([]events.Event, len(b.events))
	copy(pending, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	// Send in background to avoid blocking
	go b.send(pending)
}

// send delivers events via transport. The context is not derived from
// b.ctx: Stop cancels that before the final flush runs.
func (b *Batcher) send(pending []events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return b.transport.Send(ctx, pending)
}
