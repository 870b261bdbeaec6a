package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// userIDByClerkID resolves the internal owner id behind an auth subject.
func userIDByClerkID(ctx context.Context, db *pgxpool.Pool, clerkID string) (string, error) {
	var id string
	err := db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("user %w", ErrNotFound)
		}
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}
	return id, nil
}
