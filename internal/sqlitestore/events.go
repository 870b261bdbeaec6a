package sqlitestore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"habitTrackerAPI/internal/habit"
)

// UpsertEvent records the completion flag for (owner, habit, date). A second
// write for the same day replaces the first.
func (s *Store) UpsertEvent(ctx context.Context, ev *habit.CompletionEvent) error {
	if _, err := s.GetHabit(ctx, ev.UserID, ev.HabitID); err != nil {
		return err
	}

	now := s.stamp()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO habit_history (id, user_id, habit_id, date, completed, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, habit_id, date) DO UPDATE SET
			completed = excluded.completed,
			notes = excluded.notes,
			updated_at = excluded.updated_at
		RETURNING id, created_at`,
		uuid.NewString(), ev.UserID, ev.HabitID, ev.Date, boolInt(ev.Completed), ev.Notes, now, now)

	var createdAt string
	if err := row.Scan(&ev.ID, &createdAt); err != nil {
		return fmt.Errorf("failed to upsert history: %w", err)
	}
	var err error
	if ev.CreatedAt, err = parseStamp(createdAt); err != nil {
		return err
	}
	ev.UpdatedAt, _ = parseStamp(now)
	return nil
}

func (s *Store) ListCompletionEvents(ctx context.Context, ownerID, start, end string) ([]habit.CompletionEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, habit_id, date, completed, notes, created_at, updated_at
		FROM habit_history
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date, habit_id`, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []habit.CompletionEvent{}
	for rows.Next() {
		var (
			ev                   habit.CompletionEvent
			createdAt, updatedAt string
		)
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.HabitID, &ev.Date, &ev.Completed, &ev.Notes, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if ev.CreatedAt, err = parseStamp(createdAt); err != nil {
			return nil, err
		}
		if ev.UpdatedAt, err = parseStamp(updatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// AnyCompletionOnDate counts archived habits too: a streak day is any day
// with at least one completion.
func (s *Store) AnyCompletionOnDate(ctx context.Context, ownerID, date string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM habit_history
			WHERE user_id = ? AND date = ? AND completed = 1
		)`, ownerID, date).Scan(&exists)
	return exists, err
}

func (s *Store) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM habit_history WHERE id = ? AND user_id = ?`, eventID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
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
