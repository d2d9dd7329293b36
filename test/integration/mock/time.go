package mock

import (
	"sync"
	"time"
)

// Time is a clock pinned to a chosen instant that keeps ticking from there.
type Time struct {
	mu        sync.Mutex
	pinnedAt  time.Time
	updatedAt time.Time
}

// NewTime creates a clock that reads the wall time.
func NewTime() *Time {
	now := time.Now()
	return &Time{
		pinnedAt:  now,
		updatedAt: now,
	}
}

// SetCurrentTime pins the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinnedAt = currentTime
	t.updatedAt = time.Now()
}

// Now returns the pinned instant plus the real time elapsed since pinning.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pinnedAt.Add(time.Since(t.updatedAt))
}
