package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/habit"
)

// EventStore is the Postgres read side of the analytics engine. Owner ids
// are internal user ids, not clerk ids.
type EventStore struct {
	db *pgxpool.Pool
}

func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) ListActiveHabits(ctx context.Context, ownerID string) ([]habit.Habit, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE user_id = $1 AND archived = FALSE
		ORDER BY created_at, id`, ownerID)
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
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (s *EventStore) ListCompletionEvents(ctx context.Context, ownerID, start, end string) ([]habit.CompletionEvent, error) {
	return listEvents(ctx, s.db, ownerID, start, end)
}

func (s *EventStore) AnyCompletionOnDate(ctx context.Context, ownerID, date string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM habit_history
			WHERE user_id = $1 AND date = $2::date AND completed = TRUE
		)`, ownerID, date).Scan(&exists)
	return exists, err
}
