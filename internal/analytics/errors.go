package analytics

import (
	"errors"
	"fmt"

	"habitTrackerAPI/internal/calendar"
)

// Error kinds a report call can fail with. The calendar kinds are re-exported
// so callers only need this package for errors.Is checks.
var (
	ErrInvalidTimezone  = calendar.ErrInvalidTimezone
	ErrInvalidDate      = calendar.ErrInvalidDate
	ErrInvalidDateRange = calendar.ErrInvalidDateRange
	ErrStoreUnavailable = errors.New("event store unavailable")
	ErrInvalidRequest   = errors.New("invalid report request")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
