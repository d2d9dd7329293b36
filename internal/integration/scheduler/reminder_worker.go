// Package scheduler runs the periodic due-processing and reminder jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finance-tracker/recurring/internal/application/usecase/reminder"
)

// ReminderChecker runs one reminder check.
type ReminderChecker interface {
	Execute(ctx context.Context, input reminder.CheckRemindersInput) (*reminder.CheckRemindersOutput, error)
}

// ReminderWorker runs the reminder check on a cron schedule, "@every 1h" by default.
type ReminderWorker struct {
	checker ReminderChecker
	spec    string
	loc     *time.Location
	parser  cron.Parser

	mu     sync.Mutex
	c      *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReminderWorker creates a new reminder worker. loc decides which calendar
// day counts as today; nil means UTC.
func NewReminderWorker(checker ReminderChecker, spec string, loc *time.Location) (*ReminderWorker, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &ReminderWorker{
		checker: checker,
		spec:    spec,
		loc:     loc,
		parser:  parser,
	}, nil
}

// Start runs one check immediately and then on every cron tick until ctx is
// cancelled or Stop is called. Starting a running worker replaces the
// previous run.
func (w *ReminderWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(
		cron.WithParser(w.parser),
		cron.WithLocation(w.loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(w.spec, func() { w.run(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}

	w.c = c
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(runCtx)
	}()
	c.Start()

	slog.Info("Reminder worker started", "schedule", w.spec, "tz", w.loc.String())
	return nil
}

// Stop cancels the current run and waits for in-flight checks.
func (w *ReminderWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
}

// Running reports whether the cron schedule is active.
func (w *ReminderWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.c != nil
}

// RunNow runs one reminder check for every user.
func (w *ReminderWorker) RunNow(ctx context.Context) (*reminder.CheckRemindersOutput, error) {
	output, err := w.checker.Execute(ctx, reminder.CheckRemindersInput{
		Now: time.Now().In(w.loc),
	})
	if err != nil {
		slog.Error("Reminder check failed", "error", err)
		return nil, err
	}
	return output, nil
}

func (w *ReminderWorker) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	_, _ = w.RunNow(ctx)
}

func (w *ReminderWorker) stopLocked() {
	if w.c == nil {
		return
	}
	w.cancel()
	<-w.c.Stop().Done()
	w.wg.Wait()
	w.c = nil
	w.cancel = nil
	slog.Info("Reminder worker stopped")
}
