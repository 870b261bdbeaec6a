package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/habit"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/notification"
)

// NotificationService owns device tokens and decides which habit reminders
// are due.
type NotificationService struct {
	db *pgxpool.Pool
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

// RegisterDevice stores a push token. A token moves to the latest user that
// registers it.
func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notification.RegisterDeviceRequest) (*notification.DeviceToken, error) {
	if !req.Valid() {
		return nil, validationErr(errors.New("token and a platform of ios, android or web are required"))
	}
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO device_tokens (id, user_id, token, platform)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (token) DO UPDATE SET
		user_id = EXCLUDED.user_id,
		platform = EXCLUDED.platform,
		last_used = NOW()
	RETURNING id, user_id, token, platform, added_at, last_used`

	d := &notification.DeviceToken{}
	err = s.db.QueryRow(ctx, query, uuid.New().String(), userID, strings.TrimSpace(req.Token), req.Platform).
		Scan(&d.ID, &d.UserID, &d.Token, &d.Platform, &d.AddedAt, &d.LastUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}
	return d, nil
}

func (s *NotificationService) TokensForUser(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, token, platform, added_at, last_used
		FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var d notification.DeviceToken
		if err := rows.Scan(&d.ID, &d.UserID, &d.Token, &d.Platform, &d.AddedAt, &d.LastUsed); err != nil {
			return nil, err
		}
		tokens = append(tokens, d)
	}
	return tokens, rows.Err()
}

// DueReminders returns the reminders that fire at now and claims them, so a
// reminder goes out at most once per habit and local day. Habits already
// completed today are skipped.
func (s *NotificationService) DueReminders(ctx context.Context, now time.Time) ([]habit.DueReminder, error) {
	rows, err := s.db.Query(ctx, `
		SELECT h.id, h.user_id, h.title, h.reminder_time, u.timezone, u.locale
		FROM habits h
		JOIN users u ON u.id = h.user_id
		WHERE h.reminder_enabled = TRUE AND h.archived = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	var candidates []habit.DueReminder
	for rows.Next() {
		var r habit.DueReminder
		if err := rows.Scan(&r.HabitID, &r.UserID, &r.Title, &r.Time, &r.Timezone, &r.Locale); err != nil {
			rows.Close()
			return nil, err
		}
		candidates = append(candidates, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var due []habit.DueReminder
	for _, r := range matchReminders(candidates, now) {
		tag, err := s.db.Exec(ctx, `
			INSERT INTO reminder_log (habit_id, date)
			SELECT $1, $2::date
			WHERE NOT EXISTS (
				SELECT 1 FROM habit_history
				WHERE habit_id = $1 AND date = $2::date AND completed = TRUE
			)
			ON CONFLICT DO NOTHING`, r.HabitID, r.Date)
		if err != nil {
			logger.Error("failed to claim reminder", "habit_id", r.HabitID, "error", err)
			continue
		}
		if tag.RowsAffected() == 1 {
			due = append(due, r)
		}
	}
	return due, nil
}

// ReleaseReminder drops the claim DueReminders took, so a reminder that could
// not be queued is picked up again by a later run on the same minute.
func (s *NotificationService) ReleaseReminder(ctx context.Context, r habit.DueReminder) error {
	_, err := s.db.Exec(ctx, `DELETE FROM reminder_log WHERE habit_id = $1 AND date = $2::date`, r.HabitID, r.Date)
	if err != nil {
		return fmt.Errorf("failed to release reminder: %w", err)
	}
	return nil
}

// matchReminders keeps the candidates whose HH:MM equals the owner's local
// clock at now and stamps each with the owner's local date. Owners with an
// unresolvable timezone are skipped.
func matchReminders(candidates []habit.DueReminder, now time.Time) []habit.DueReminder {
	resolvers := map[string]*calendar.Resolver{}
	var out []habit.DueReminder
	for _, r := range candidates {
		res, ok := resolvers[r.Timezone]
		if !ok {
			var err error
			res, err = calendar.New(r.Timezone)
			if err != nil {
				logger.Warn("skipping reminder with invalid timezone", "user_id", r.UserID, "timezone", r.Timezone)
			}
			resolvers[r.Timezone] = res
		}
		if res == nil || res.LocalClock(now) != r.Time {
			continue
		}
		r.Date = res.Today(now)
		out = append(out, r)
	}
	return out
}
