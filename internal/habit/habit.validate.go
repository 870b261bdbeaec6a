package habit

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidFrequency    = errors.New("frequency must be one of Diario, Semanal, Mensual")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
)

// NewHabit builds a habit from a create request, filling the defaults.
// An unrecognised frequency falls back to daily, as creation always has.
func NewHabit(userID string, req *CreateHabitRequest) (*Habit, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	freq := req.Frequency
	if !freq.Valid() {
		freq = FrequencyDaily
	}

	reminder := Reminder{Enabled: false, Time: DefaultReminderTime}
	if req.Reminder != nil {
		reminder = *req.Reminder
		if reminder.Time == "" {
			reminder.Time = DefaultReminderTime
		}
	}
	if err := validateReminderTime(reminder.Time); err != nil {
		return nil, err
	}

	return &Habit{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Frequency:   freq,
		Reminder:    reminder,
		Icon:        req.Icon,
		Motivation:  req.Motivation,
	}, nil
}

// Validate rejects updates that would leave a habit inconsistent.
func (r *UpdateHabitRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return ErrTitleRequired
	}
	if r.Frequency != nil && !r.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if r.Reminder != nil {
		if r.Reminder.Time == "" {
			r.Reminder.Time = DefaultReminderTime
		}
		return validateReminderTime(r.Reminder.Time)
	}
	return nil
}

func validateReminderTime(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return ErrInvalidReminderTime
	}
	return nil
}
