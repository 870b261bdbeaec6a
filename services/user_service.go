package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, clerk_id, name, email, timezone, locale, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.ClerkID, &u.Name, &u.Email, &u.Timezone, &u.Locale, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser registers a user from the identity provider. Webhooks may be
// redelivered, so an existing clerk id is updated instead of duplicated.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	tz := req.Timezone
	if _, err := calendar.LoadLocation(tz); err != nil {
		logger.Warn("ignoring invalid timezone on registration", "clerk_id", req.ClerkID, "timezone", tz)
		tz = ""
	}
	if tz == "" {
		tz = user.DefaultTimezone
	}
	locale := req.Locale
	if locale == "" {
		locale = calendar.DefaultLocale
	}

	now := time.Now()
	query := `
	INSERT INTO users (id, clerk_id, name, email, timezone, locale, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	ON CONFLICT (clerk_id) DO UPDATE SET
		name = EXCLUDED.name,
		email = EXCLUDED.email,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query,
		uuid.New().String(), req.ClerkID, strings.TrimSpace(req.Name), req.Email, tz, locale, now))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE clerk_id = $1`, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateProfileByClerkID writes only the fields present in req. A timezone
// that does not resolve is rejected with calendar.ErrInvalidTimezone.
func (s *UserService) UpdateProfileByClerkID(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationErr(errors.New("name cannot be empty"))
	}
	var tz *string
	if req.Timezone != nil {
		if _, err := calendar.LoadLocation(*req.Timezone); err != nil {
			return nil, err
		}
		v := *req.Timezone
		if v == "" {
			v = user.DefaultTimezone
		}
		tz = &v
	}

	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}

	query := `
	UPDATE users SET
		name       = COALESCE($2, name),
		email      = COALESCE($3, email),
		timezone   = COALESCE($4, timezone),
		locale     = COALESCE($5, locale),
		updated_at = NOW()
	WHERE clerk_id = $1
	RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query, clerkID, name, req.Email, tz, req.Locale))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// DeleteUserByClerkID removes the user; habits, history and reports cascade.
func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	return nil
}
