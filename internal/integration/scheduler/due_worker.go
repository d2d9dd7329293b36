// Package scheduler runs the periodic due-processing and reminder jobs.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
)

// DueProcessor applies due processing for stored schedules.
type DueProcessor interface {
	Execute(ctx context.Context, input recurring.ApplyDueProcessingInput) (*recurring.ApplyDueProcessingOutput, error)
}

// DueWorker periodically generates transactions for due schedules.
type DueWorker struct {
	processor DueProcessor
	interval  time.Duration
	loc       *time.Location

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDueWorker creates a new due worker. loc decides which calendar day a
// pass runs on and must match the reminder worker's; nil means UTC.
func NewDueWorker(processor DueProcessor, interval time.Duration, loc *time.Location) *DueWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &DueWorker{
		processor: processor,
		interval:  interval,
		loc:       loc,
	}
}

// Start runs one pass immediately and then one per interval until ctx is
// cancelled or Stop is called. Starting a running worker replaces the
// previous run.
func (w *DueWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	slog.Info("Due worker started", "interval", w.interval, "tz", w.loc.String())

	go func() {
		defer close(done)
		tick(runCtx, w.interval, func() { _, _ = w.RunNow(runCtx) })
		slog.Info("Due worker shutting down")
	}()
}

// Stop cancels the current run and waits for it to finish.
func (w *DueWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
}

// Running reports whether the worker loop is active.
func (w *DueWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.cancel != nil
}

// RunNow runs one due-processing pass for every user.
func (w *DueWorker) RunNow(ctx context.Context) (*recurring.ApplyDueProcessingOutput, error) {
	output, err := w.processor.Execute(ctx, recurring.ApplyDueProcessingInput{
		Now: time.Now().In(w.loc),
	})
	if err != nil {
		slog.Error("Due processing failed", "error", err)
		return nil, err
	}
	return output, nil
}

func (w *DueWorker) stopLocked() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
	w.done = nil
}
