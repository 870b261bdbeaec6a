package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/habit"
)

type HabitService struct {
	db *pgxpool.Pool
}

func NewHabitService(db *pgxpool.Pool) *HabitService {
	return &HabitService{db: db}
}

const habitColumns = `id, user_id, title, description, frequency, reminder_enabled, reminder_time,
	icon, motivation, archived, created_at, updated_at`

func scanHabit(row pgx.Row) (*habit.Habit, error) {
	h := &habit.Habit{}
	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Frequency,
		&h.Reminder.Enabled, &h.Reminder.Time, &h.Icon, &h.Motivation, &h.Archived,
		&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ListHabits returns the owner's non-archived habits, newest first.
func (s *HabitService) ListHabits(ctx context.Context, clerkID string) ([]habit.Habit, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE user_id = $1 AND archived = FALSE
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (s *HabitService) CreateHabit(ctx context.Context, clerkID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	h, err := habit.NewHabit(userID, req)
	if err != nil {
		return nil, validationErr(err)
	}

	query := `
	INSERT INTO habits (id, user_id, title, description, frequency, reminder_enabled, reminder_time, icon, motivation)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + habitColumns

	created, err := scanHabit(s.db.QueryRow(ctx, query,
		uuid.New().String(), h.UserID, h.Title, h.Description, string(h.Frequency),
		h.Reminder.Enabled, h.Reminder.Time, h.Icon, h.Motivation))
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return created, nil
}

func (s *HabitService) getOwned(ctx context.Context, userID, habitID string) (*habit.Habit, error) {
	if _, err := uuid.Parse(habitID); err != nil {
		return nil, fmt.Errorf("habit %w", ErrNotFound)
	}
	h, err := scanHabit(s.db.QueryRow(ctx, `
		SELECT `+habitColumns+` FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("habit %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

func (s *HabitService) GetHabit(ctx context.Context, clerkID, habitID string) (*habit.Habit, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.getOwned(ctx, userID, habitID)
}

// UpdateHabit applies the whitelisted fields present in req.
func (s *HabitService) UpdateHabit(ctx context.Context, clerkID, habitID string, req *habit.UpdateHabitRequest) (*habit.Habit, error) {
	if err := req.Validate(); err != nil {
		return nil, validationErr(err)
	}
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	h, err := s.getOwned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	req.Apply(h)

	query := `
	UPDATE habits SET
		title = $3, description = $4, frequency = $5,
		reminder_enabled = $6, reminder_time = $7,
		icon = $8, motivation = $9, archived = $10,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING ` + habitColumns

	updated, err := scanHabit(s.db.QueryRow(ctx, query,
		h.ID, userID, h.Title, h.Description, string(h.Frequency),
		h.Reminder.Enabled, h.Reminder.Time, h.Icon, h.Motivation, h.Archived))
	if err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return updated, nil
}

// ArchiveHabit hides the habit from every report; its history is kept.
func (s *HabitService) ArchiveHabit(ctx context.Context, clerkID, habitID string) error {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(habitID); err != nil {
		return fmt.Errorf("habit %w", ErrNotFound)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE habits SET archived = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("habit %w", ErrNotFound)
	}
	return nil
}
