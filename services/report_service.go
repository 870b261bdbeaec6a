package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/feedback"
)

// ReportService stores user-submitted bug and feedback reports.
type ReportService struct {
	db *pgxpool.Pool
}

func NewReportService(db *pgxpool.Pool) *ReportService {
	return &ReportService{db: db}
}

const reportColumns = `id, user_id, type, title, description, metadata, status, handled_by, resolved_at, created_at, updated_at`

func scanReport(row pgx.Row) (*feedback.Report, error) {
	r := &feedback.Report{}
	err := row.Scan(&r.ID, &r.UserID, &r.Type, &r.Title, &r.Description, &r.Metadata,
		&r.Status, &r.HandledBy, &r.ResolvedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
	return r, nil
}

func (s *ReportService) CreateReport(ctx context.Context, clerkID string, req *feedback.CreateReportRequest) (*feedback.Report, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationErr(errors.New("title is required"))
	}
	typ := req.Type
	if typ == "" {
		typ = feedback.TypeFeedback
	}
	if !typ.Valid() {
		return nil, validationErr(fmt.Errorf("unknown report type %q", typ))
	}
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO reports (id, user_id, type, title, description, metadata, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + reportColumns

	r, err := scanReport(s.db.QueryRow(ctx, query,
		uuid.New().String(), userID, string(typ), title, req.Description, metadata, string(feedback.StatusOpen)))
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return r, nil
}

// ListReports returns the caller's reports, newest first.
func (s *ReportService) ListReports(ctx context.Context, clerkID string, limit int) ([]feedback.Report, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, feedback.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []feedback.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// owned loads a report and checks it belongs to userID.
func (s *ReportService) owned(ctx context.Context, userID, reportID string) (*feedback.Report, error) {
	if _, err := uuid.Parse(reportID); err != nil {
		return nil, fmt.Errorf("report %w", ErrNotFound)
	}
	r, err := scanReport(s.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if r.UserID != userID {
		return nil, fmt.Errorf("report belongs to another user: %w", ErrForbidden)
	}
	return r, nil
}

func (s *ReportService) GetReport(ctx context.Context, clerkID, reportID string) (*feedback.Report, error) {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.owned(ctx, userID, reportID)
}

// UpdateReport applies the fields present in req. Closing a report stamps
// resolved_at and handled_by; reopening clears them.
func (s *ReportService) UpdateReport(ctx context.Context, clerkID, reportID string, req *feedback.UpdateReportRequest) (*feedback.Report, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, validationErr(errors.New("title cannot be empty"))
	}
	if req.Status != nil && *req.Status != feedback.StatusOpen && *req.Status != feedback.StatusClosed {
		return nil, validationErr(fmt.Errorf("unknown status %q", *req.Status))
	}

	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	current, err := s.owned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		current.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Metadata != nil {
		current.Metadata = *req.Metadata
	}

	query := `
	UPDATE reports SET
		title = $2, description = $3, metadata = $4, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + reportColumns
	args := []any{reportID, current.Title, current.Description, current.Metadata}

	if req.Status != nil && *req.Status != current.Status {
		if *req.Status == feedback.StatusClosed {
			query = `
			UPDATE reports SET
				title = $2, description = $3, metadata = $4,
				status = 'closed', resolved_at = NOW(), handled_by = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + reportColumns
			args = append(args, clerkID)
		} else {
			query = `
			UPDATE reports SET
				title = $2, description = $3, metadata = $4,
				status = 'open', resolved_at = NULL, handled_by = NULL, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + reportColumns
		}
	}

	updated, err := scanReport(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return updated, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, clerkID, reportID string) error {
	userID, err := userIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}
	if _, err := s.owned(ctx, userID, reportID); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
