// Package timer runs the elapsed-seconds ticker that accompanies a game.
package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is used when Start is given a non-positive interval.
const DefaultInterval = time.Second

// Handle controls a running ticker.
type Handle struct {
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
	elapsed atomic.Uint64
}

// Start launches a goroutine that calls onTick with 1, 2, 3, ... once per
// interval until the handle is cancelled or ctx ends. onTick runs on the
// ticker goroutine and must not wait on whoever calls Cancel.
func Start(ctx context.Context, interval time.Duration, onTick func(elapsed uint64)) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go h.run(ctx, interval, onTick)
	return h
}

func (h *Handle) run(ctx context.Context, interval time.Duration, onTick func(uint64)) {
	defer close(h.done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// a tick racing a cancel is dropped
			if ctx.Err() != nil {
				return
			}
			n := h.elapsed.Add(1)
			if onTick != nil {
				onTick(n)
			}
		}
	}
}

// Cancel stops the ticker and waits for its goroutine to exit. No onTick
// call happens after Cancel returns. Safe to call repeatedly.
func (h *Handle) Cancel() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the ticker goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Elapsed reports the last value passed to onTick.
func (h *Handle) Elapsed() uint64 { return h.elapsed.Load() }
