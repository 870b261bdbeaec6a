package analytics

import "habitTrackerAPI/internal/calendar"

// StreakLookbackDays caps how far back a streak is walked. It bounds the cost
// of the range fetch and the walk; it is not a rule about streak length.
const StreakLookbackDays = 365

// Streak counts consecutive days ending at today with at least one completed
// habit. ix must cover [today-lookback+1, today].
func Streak(today string, ix *Index, lookback int) (int, error) {
	t, err := calendar.Parse(today)
	if err != nil {
		return 0, err
	}
	streak := 0
	for i := 0; i < lookback; i++ {
		day := t.AddDate(0, 0, -i).Format(calendar.DateLayout)
		if !ix.AnyCompleted(day) {
			break
		}
		streak++
	}
	return streak, nil
}
