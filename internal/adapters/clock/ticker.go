// Package clock provides the periodic tick source that drives the timer.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/xvierd/striktflow/internal/ports"
)

// Ticker implements ports.TickSource on top of time.Ticker. At most one
// loop goroutine is active at a time.
type Ticker struct {
	period time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

var _ ports.TickSource = (*Ticker)(nil)

// NewTicker creates a tick source firing every period. A non-positive
// period defaults to one second.
func NewTicker(period time.Duration) *Ticker {
	if period <= 0 {
		period = time.Second
	}
	return &Ticker{period: period}
}

// Start cancels any running loop and starts a new one that calls fn once
// per period.
func (t *Ticker) Start(fn func()) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.mu.Unlock()

	go t.loop(ctx, fn)
}

// Stop cancels the running loop, if any.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Ticker) loop(ctx context.Context, fn func()) {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A cancel may race with the tick; prefer the cancel.
			if ctx.Err() != nil {
				return
			}
			fn()
		}
	}
}
