package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a global cap on requests per rolling time window. It keeps
// the timestamps of recent requests and blocks callers until admitting one
// more request would not exceed the cap. Safe for concurrent use; waiters
// queue on the mutex, so admission is FIFO relative to lock acquisition.
type Limiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	stamps      []time.Time

	// Overridable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a limiter admitting at most maxRequests per trailing window.
func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// Acquire blocks until one more request fits within the window, then records
// it. Returns early only if ctx is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if len(l.stamps) >= l.maxRequests {
		wait := l.window - now.Sub(l.stamps[0])
		if wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
			l.evict(l.now())
		}
	}

	l.stamps = append(l.stamps, l.now())
	return nil
}

// evict drops timestamps older than the trailing window. Caller holds the lock.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
