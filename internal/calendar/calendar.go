// Package calendar resolves logical dates (YYYY-MM-DD) in a user's timezone.
//
// A logical date is a calendar day, not an instant. Every value returned by this
// package is a date string; the time of day never leaks out. Arithmetic is done on
// UTC midnights so that DST transitions in the user's zone cannot shift a day.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	DaysPerWeek = 7
)

var (
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Resolver answers calendar questions for one timezone.
type Resolver struct {
	tz  string
	loc *time.Location
}

// New loads the IANA zone. An empty name is UTC, the profile default. "Local"
// is rejected because it depends on the host, not the user.
func New(timezone string) (*Resolver, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	if timezone == "" {
		timezone = "UTC"
	}
	return &Resolver{tz: timezone, loc: loc}, nil
}

// LoadLocation validates a timezone name without building a Resolver.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	if timezone == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	return loc, nil
}

func (r *Resolver) Timezone() string { return r.tz }

func (r *Resolver) Location() *time.Location { return r.loc }

// Today returns the owner's logical date at the reference instant.
func (r *Resolver) Today(now time.Time) string {
	return now.In(r.loc).Format(DateLayout)
}

// LocalClock returns the owner's wall clock as HH:MM at the reference instant.
func (r *Resolver) LocalClock(now time.Time) string {
	return now.In(r.loc).Format("15:04")
}

// CurrentWeekStart is the Monday of the week containing today.
func (r *Resolver) CurrentWeekStart(now time.Time) string {
	// Today is always a valid date, so the error is unreachable.
	anchor, _ := WeekStart(r.Today(now))
	return anchor
}

// Parse reads a logical date. The result is midnight UTC of that day.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

func format(t time.Time) string { return t.Format(DateLayout) }

// AddDays shifts a logical date by n days (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return format(t.AddDate(0, 0, n)), nil
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd, nil
}

// WeekStart returns the Monday anchoring the week of date.
func WeekStart(date string) (string, error) {
	wd, err := ISOWeekday(date)
	if err != nil {
		return "", err
	}
	daysFromMonday := (wd + 6) % 7
	return AddDays(date, -daysFromMonday)
}

// WeekDays returns [anchor, anchor+1, ..., anchor+6].
func WeekDays(anchor string) ([]string, error) {
	return Days(anchor, DaysPerWeek)
}

// Days returns n consecutive dates starting at start.
func Days(start string, n int) ([]string, error) {
	t, err := Parse(start)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative day count %d", ErrInvalidDateRange, n)
	}
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, format(t.AddDate(0, 0, i)))
	}
	return days, nil
}

// Weeks returns count consecutive week anchors beginning at start. start must
// itself be a Monday; use WeekStart first when it may not be.
func Weeks(start string, count int) ([]string, error) {
	wd, err := ISOWeekday(start)
	if err != nil {
		return nil, err
	}
	if wd != 1 {
		return nil, fmt.Errorf("%w: %q is not a week anchor", ErrInvalidDate, start)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative week count %d", ErrInvalidDateRange, count)
	}
	t, _ := Parse(start)
	anchors := make([]string, 0, count)
	for i := 0; i < count; i++ {
		anchors = append(anchors, format(t.AddDate(0, 0, i*DaysPerWeek)))
	}
	return anchors, nil
}

// Range enumerates [start, end] inclusive. end before start is ErrInvalidDateRange.
func Range(start, end string) ([]string, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}
	s, _ := Parse(start)
	e, _ := Parse(end)
	n := int(e.Sub(s).Hours()/24) + 1
	return Days(start, n)
}

// ValidateRange checks both bounds parse and that end is not earlier than start.
func ValidateRange(start, end string) error {
	s, err := Parse(start)
	if err != nil {
		return err
	}
	e, err := Parse(end)
	if err != nil {
		return err
	}
	if e.Before(s) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, end, start)
	}
	return nil
}

// MonthDays returns every date of the given month.
func MonthDays(year, month int) ([]string, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Days(format(first), last.Day())
}
