// Package workers runs the background jobs of the API.
package workers

import (
	"context"
	"time"

	"habitTrackerAPI/internal/habit"
	"habitTrackerAPI/internal/logger"
)

// ReminderSource returns, and claims, the reminders that fire at now.
// ReleaseReminder gives a claim back when the reminder was never queued.
type ReminderSource interface {
	DueReminders(ctx context.Context, now time.Time) ([]habit.DueReminder, error)
	ReleaseReminder(ctx context.Context, r habit.DueReminder) error
}

// Dispatcher queues one reminder push.
type Dispatcher interface {
	Dispatch(ctx context.Context, r habit.DueReminder) bool
}

type ReminderWorker struct {
	source     ReminderSource
	dispatcher Dispatcher
	interval   time.Duration
	now        func() time.Time
}

func NewReminderWorker(source ReminderSource, dispatcher Dispatcher, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderWorker{source: source, dispatcher: dispatcher, interval: interval, now: time.Now}
}

// Start runs the worker on its own goroutine until ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	go w.Run(ctx)
}

func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("reminder worker started", "interval", w.interval)
	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-ctx.Done():
			logger.Info("reminder worker stopped")
			return
		}
	}
}

// RunOnce dispatches every reminder due at the current minute and returns
// how many were queued.
func (w *ReminderWorker) RunOnce(ctx context.Context) int {
	runCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	due, err := w.source.DueReminders(runCtx, w.now())
	if err != nil {
		logger.Error("failed to load due reminders", "error", err)
		return 0
	}

	queued := 0
	for _, r := range due {
		if w.dispatcher.Dispatch(runCtx, r) {
			queued++
			continue
		}
		// runCtx may be what made Dispatch give up
		releaseCtx, cancelRelease := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if err := w.source.ReleaseReminder(releaseCtx, r); err != nil {
			logger.Error("failed to release reminder", "habit_id", r.HabitID, "date", r.Date, "error", err)
		}
		cancelRelease()
	}
	if queued > 0 {
		logger.Info("reminders queued", "count", queued, "due", len(due))
	}
	return queued
}
