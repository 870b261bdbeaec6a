package feedback

import "time"

type Type string

const (
	TypeBug      Type = "bug"
	TypeFeedback Type = "feedback"
	TypeOther    Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBug, TypeFeedback, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Report struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Type        Type           `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	Status      Status         `json:"status"`
	HandledBy   *string        `json:"handledBy"`
	ResolvedAt  *time.Time     `json:"resolvedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type CreateReportRequest struct {
	Type        Type           `json:"type"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateReportRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Metadata    *map[string]any `json:"metadata,omitempty"`
	Status      *Status         `json:"status,omitempty"`
}

// ClampLimit applies the default and ceiling of the list endpoint.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
