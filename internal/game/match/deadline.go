package match

import (
	"sync"
	"time"
)

// deadline is a cancellable single-fire timer with periodic ticks. Exactly
// one of expiry or cancellation wins: once cancel returns, the expiry
// callback will not run, and a cancel after expiry is a no-op. The engine
// additionally guards callbacks with a round sequence check, so a fire that
// was already queued when the round resolved falls through harmlessly.
type deadline struct {
	mu        sync.Mutex
	fired     bool
	cancelled bool
	stop      chan struct{}
}

func newDeadline(d, tick time.Duration, onTick func(remaining time.Duration), onExpire func()) *deadline {
	dl := &deadline{stop: make(chan struct{})}

	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		remaining := d
		for {
			select {
			case <-dl.stop:
				return
			case <-ticker.C:
				remaining -= tick
				if remaining <= 0 || !dl.alive() {
					continue
				}
				onTick(remaining)
			case <-timer.C:
				if !dl.fire() {
					return
				}
				onExpire()
				return
			}
		}
	}()

	return dl
}

// cancel disarms the deadline. It is idempotent and reports whether the
// cancellation won over expiry.
func (dl *deadline) cancel() bool {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.fired || dl.cancelled {
		return false
	}
	dl.cancelled = true
	close(dl.stop)
	return true
}

// fire claims the single expiry. It loses when the deadline was cancelled
// or already fired.
func (dl *deadline) fire() bool {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.fired || dl.cancelled {
		return false
	}
	dl.fired = true
	return true
}

func (dl *deadline) alive() bool {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return !dl.fired && !dl.cancelled
}
