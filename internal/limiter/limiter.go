// Package limiter provides per-principal fixed-window admission control.
// Each request class gets its own limiter instance so abuse of one class
// cannot starve another.
package limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"prekeyd/internal/model"
)

var _ model.Limiter = (*InMemory)(nil)

// InMemory is a fixed-window limiter partitioned by principal: each
// principal owns its window and lock, so independent principals never
// contend. Expired windows are swept at most once per window, so stale
// principals do not accumulate.
type InMemory struct {
	window    time.Duration
	limit     int
	items     sync.Map // principal -> *window
	lastSweep atomic.Int64
}

type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func NewInMemory(limit int, windowSize time.Duration) *InMemory {
	if limit <= 0 {
		limit = 1
	}
	if windowSize <= 0 {
		windowSize = time.Minute
	}
	return &InMemory{
		window: windowSize,
		limit:  limit,
	}
}

// TryAcquire consumes one permit from the principal's window and reports
// whether the request is admitted.
func (l *InMemory) TryAcquire(_ context.Context, principal string) bool {
	now := time.Now().UTC()
	l.maybeSweep(now)

	v, _ := l.items.LoadOrStore(principal, &window{})
	w := v.(*window)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.resetAt.IsZero() || now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(l.window)
	}
	w.count++
	return w.count <= l.limit
}

// maybeSweep drops expired windows, at most once per window length.
func (l *InMemory) maybeSweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < l.window.Nanoseconds() {
		return
	}
	if !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	l.items.Range(func(key, value any) bool {
		w := value.(*window)
		w.mu.Lock()
		expired := !w.resetAt.IsZero() && now.After(w.resetAt)
		w.mu.Unlock()
		if expired {
			l.items.Delete(key)
		}
		return true
	})
}

// size reports the number of tracked principals.
func (l *InMemory) size() int {
	n := 0
	l.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
