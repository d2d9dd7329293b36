package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cleaner drops state that is no longer needed.
type Cleaner interface {
	Cleanup()
}

// CleanupWorker periodically calls Cleanup on in-process caches such as the
// trigger rate limiter.
type CleanupWorker struct {
	name     string
	cleaner  Cleaner
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCleanupWorker creates a new cleanup worker.
func NewCleanupWorker(name string, cleaner Cleaner, interval time.Duration) *CleanupWorker {
	return &CleanupWorker{
		name:     name,
		cleaner:  cleaner,
		interval: interval,
	}
}

// Start cleans immediately and then once per interval until ctx is cancelled
// or Stop is called.
func (w *CleanupWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	slog.Info("Cleanup worker started", "name", w.name, "interval", w.interval)

	go func() {
		defer close(done)
		tick(runCtx, w.interval, w.cleaner.Cleanup)
	}()
}

// Stop cancels the current run and waits for it to finish.
func (w *CleanupWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
}

// Running reports whether the worker loop is active.
func (w *CleanupWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.cancel != nil
}

func (w *CleanupWorker) stopLocked() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
	w.done = nil
}
