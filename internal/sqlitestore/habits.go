package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"habitTrackerAPI/internal/habit"
)

const habitColumns = `id, user_id, title, description, frequency, reminder_enabled, reminder_time,
	icon, motivation, archived, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (habit.Habit, error) {
	var (
		h                    habit.Habit
		createdAt, updatedAt string
	)
	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Frequency,
		&h.Reminder.Enabled, &h.Reminder.Time, &h.Icon, &h.Motivation, &h.Archived,
		&createdAt, &updatedAt)
	if err != nil {
		return habit.Habit{}, err
	}
	if h.CreatedAt, err = parseStamp(createdAt); err != nil {
		return habit.Habit{}, err
	}
	if h.UpdatedAt, err = parseStamp(updatedAt); err != nil {
		return habit.Habit{}, err
	}
	return h, nil
}

// CreateHabit assigns the id and timestamps and inserts h.
func (s *Store) CreateHabit(ctx context.Context, h *habit.Habit) error {
	h.ID = uuid.NewString()
	now := s.stamp()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.Title, h.Description, string(h.Frequency),
		boolInt(h.Reminder.Enabled), h.Reminder.Time, h.Icon, h.Motivation,
		boolInt(h.Archived), now, now)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	h.CreatedAt, _ = parseStamp(now)
	h.UpdatedAt = h.CreatedAt
	return nil
}

func (s *Store) GetHabit(ctx context.Context, ownerID, habitID string) (habit.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+habitColumns+` FROM habits WHERE id = ? AND user_id = ?`, habitID, ownerID)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, ErrNotFound
	}
	return h, err
}

// ListHabits returns the owner's habits in creation order. Stamps only
// carry whole seconds, so rowid breaks ties.
func (s *Store) ListHabits(ctx context.Context, ownerID string, includeArchived bool) ([]habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY created_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ListActiveHabits(ctx context.Context, ownerID string) ([]habit.Habit, error) {
	return s.ListHabits(ctx, ownerID, false)
}

// ArchiveHabit hides a habit from analytics; its history is kept.
func (s *Store) ArchiveHabit(ctx context.Context, ownerID, habitID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE habits SET archived = 1, updated_at = ?
		WHERE id = ? AND user_id = ?`, s.stamp(), habitID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
