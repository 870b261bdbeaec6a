package analytics

import "habitTrackerAPI/internal/habit"

type CalendarDay struct {
	Date       string `json:"date"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	IsToday    bool   `json:"isToday"`
}

type CalendarReport struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// BuildCalendar lays out one month of per-day progress against the current
// active habit set.
func BuildCalendar(year, month int, days []string, today string, habits []habit.Habit, ix *Index) CalendarReport {
	out := CalendarReport{Year: year, Month: month, Days: make([]CalendarDay, len(days))}
	for i, d := range days {
		done := ix.CompletedAmong(d, habits)
		out.Days[i] = CalendarDay{
			Date:       d,
			Completed:  done,
			Total:      len(habits),
			Percentage: Percentage(done, len(habits)),
			IsToday:    d == today,
		}
	}
	return out
}
