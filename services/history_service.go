package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/habit"
)

type HistoryService struct {
	db *pgxpool.Pool
}

func NewHistoryService(db *pgxpool.Pool) *HistoryService {
	return &HistoryService{db: db}
}

const historyColumns = `id, user_id, habit_id, to_char(date, 'YYYY-MM-DD'), completed, notes, created_at, updated_at`

func scanEvent(row pgx.Row) (*habit.CompletionEvent, error) {
	ev := &habit.CompletionEvent{}
	err := row.Scan(&ev.ID, &ev.UserID, &ev.HabitID, &ev.Date, &ev.Completed, &ev.Notes, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func listEvents(ctx context.Context, db *pgxpool.Pool, userID, start, end string) ([]habit.CompletionEvent, error) {
	rows, err := db.Query(ctx, `
		SELECT `+historyColumns+`
		FROM habit_history
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date, habit_id`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []habit.CompletionEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// ListHistory returns the owner's events in [start, end].
func (s *HistoryService) ListHistory(ctx context.Context, clerkID, start, end string) ([]habit.CompletionEvent, error) {
	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, err
	}
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	events, err := listEvents(ctx, s.db, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return events, nil
}

// UpsertHistory records the day's flag for an owned, active habit. There is
// at most one record per (user, habit, date).
func (s *HistoryService) UpsertHistory(ctx context.Context, clerkID string, req *habit.UpsertHistoryRequest) (*habit.CompletionEvent, error) {
	if _, err := calendar.Parse(req.Date); err != nil {
		return nil, err
	}
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(req.HabitID); err != nil {
		return nil, fmt.Errorf("habit %w", ErrNotFound)
	}

	var active bool
	err = s.db.QueryRow(ctx, `
		SELECT NOT archived FROM habits WHERE id = $1 AND user_id = $2`, req.HabitID, userID).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && !active) {
		return nil, fmt.Errorf("habit %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check habit: %w", err)
	}

	query := `
	INSERT INTO habit_history (id, user_id, habit_id, date, completed, notes)
	VALUES ($1, $2, $3, $4::date, $5, $6)
	ON CONFLICT (user_id, habit_id, date) DO UPDATE SET
		completed = EXCLUDED.completed,
		notes = EXCLUDED.notes,
		updated_at = NOW()
	RETURNING ` + historyColumns

	ev, err := scanEvent(s.db.QueryRow(ctx, query,
		uuid.New().String(), userID, req.HabitID, req.Date, req.Completed, req.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert history: %w", err)
	}
	return ev, nil
}

func (s *HistoryService) DeleteHistory(ctx context.Context, clerkID, eventID string) error {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(eventID); err != nil {
		return fmt.Errorf("history record %w", ErrNotFound)
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM habit_history WHERE id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("history record %w", ErrNotFound)
	}
	return nil
}
