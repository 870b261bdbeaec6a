package services

import (
	"context"
	"sync"
	"time"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/habit"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/notification"
)

// TokenSource lists the push tokens of a user.
type TokenSource interface {
	TokensForUser(ctx context.Context, userID string) ([]notification.DeviceToken, error)
}

// NotificationDispatcher sends reminder pushes from a bounded queue with a
// fixed pool of workers.
type NotificationDispatcher struct {
	tokens       TokenSource
	pushProvider notification.PushProvider
	workers      int
	jobQueue     chan habit.DueReminder
	stopChan     chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

func NewNotificationDispatcher(tokens TokenSource, provider notification.PushProvider) *NotificationDispatcher {
	d := &NotificationDispatcher{
		tokens:       tokens,
		pushProvider: provider,
		workers:      5,
		jobQueue:     make(chan habit.DueReminder, 100),
		stopChan:     make(chan struct{}),
	}
	d.startWorkers()
	return d
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(r habit.DueReminder) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokens, err := d.tokens.TokensForUser(ctx, r.UserID)
	if err != nil {
		logger.Error("failed to load device tokens", "user_id", r.UserID, "error", err)
		return
	}
	if len(tokens) == 0 {
		logger.Debug("no devices for reminder", "user_id", r.UserID, "habit_id", r.HabitID)
		return
	}

	title, body := notification.ReminderMessage(calendar.Language(r.Locale), r.Title)
	data := map[string]any{"type": "habit_reminder", "habitId": r.HabitID, "date": r.Date}
	if err := d.pushProvider.SendPush(ctx, tokens, title, body, data); err != nil {
		logger.Error("reminder push failed", "user_id", r.UserID, "habit_id", r.HabitID, "error", err)
	}
}

// Dispatch queues a reminder. It gives up after a short wait when the queue
// is full or the context ends.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, r habit.DueReminder) bool {
	select {
	case d.jobQueue <- r:
		return true
	case <-ctx.Done():
		return false
	case <-time.After(5 * time.Second):
		logger.Warn("reminder queue full", "habit_id", r.HabitID)
		return false
	}
}

// Stop waits for in-flight pushes. Queued jobs not yet picked up are dropped.
func (d *NotificationDispatcher) Stop() {
	d.stopOnce.Do(func() {
		logger.Info("stopping notification dispatcher")
		close(d.stopChan)
		d.wg.Wait()
	})
}
