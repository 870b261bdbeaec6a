package habit

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "Diario"
	FrequencyWeekly  Frequency = "Semanal"
	FrequencyMonthly Frequency = "Mensual"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

const DefaultReminderTime = "08:00"

type Reminder struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

// Habit is owned by exactly one user. Archived habits are kept for the
// integrity of their history but never counted by analytics.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	Reminder    Reminder  `json:"reminder"`
	Icon        string    `json:"icon"`
	Motivation  string    `json:"motivation"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompletionEvent is unique per (UserID, HabitID, Date). Date is a logical
// day in the owner's timezone, never an instant.
type CompletionEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	HabitID   string    `json:"habitId"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DueReminder is one habit whose reminder fires for its owner. Date is the
// owner's local day once the reminder has been matched against a clock.
type DueReminder struct {
	HabitID  string
	UserID   string
	Title    string
	Time     string
	Timezone string
	Locale   string
	Date     string
}
