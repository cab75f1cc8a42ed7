package units

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// Beacon counts ticks in the background until stopped. The service reports
// the count as a liveness signal.
type Beacon struct {
	interval time.Duration
	count    int64

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewBeacon(interval time.Duration) *Beacon {
	return &Beacon{interval: interval}
}

// Start launches the ticking goroutine. A beacon can be restarted after it
// stops, but not started twice.
func (b *Beacon) Start(ctx context.Context) error {
	if b.interval <= 0 {
		return errors.Errorf("beacon interval %s must be positive", b.interval)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.runningLocked() {
		return errors.New("beacon is already running")
	}
	if b.cancel != nil {
		b.cancel()
	}

	ctx, b.cancel = context.WithCancel(ctx)
	b.stopped = make(chan struct{})

	go func(stopped chan struct{}) {
		defer close(stopped)
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				grip.Debugf("beacon stopped after %d ticks", b.Count())
				return
			case <-ticker.C:
				atomic.AddInt64(&b.count, 1)
			}
		}
	}(b.stopped)

	return nil
}

func (b *Beacon) Count() int64 { return atomic.LoadInt64(&b.count) }

func (b *Beacon) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.runningLocked()
}

func (b *Beacon) runningLocked() bool {
	if b.stopped == nil {
		return false
	}

	select {
	case <-b.stopped:
		return false
	default:
		return true
	}
}

// Stop cancels the goroutine and waits for it to exit.
func (b *Beacon) Stop() {
	b.mu.Lock()
	cancel, stopped := b.cancel, b.stopped
	b.cancel, b.stopped = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}
