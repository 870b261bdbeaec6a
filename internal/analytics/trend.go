package analytics

import "habitTrackerAPI/internal/habit"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendDeadband is the band of percentage points, inclusive, treated as no change.
const trendDeadband = 3

func Classify(delta int) Trend {
	switch {
	case delta > trendDeadband:
		return TrendUp
	case delta < -trendDeadband:
		return TrendDown
	default:
		return TrendStable
	}
}

type HabitTrend struct {
	HabitID            string `json:"habitId"`
	Title              string `json:"title"`
	Completed          int    `json:"completed"`
	Total              int    `json:"total"`
	Percentage         int    `json:"percentage"`
	PreviousCompleted  int    `json:"previousCompleted"`
	PreviousPercentage int    `json:"previousPercentage"`
	Delta              int    `json:"delta"`
	Trend              Trend  `json:"trend"`
}

type TrendReport struct {
	WeekStart         string       `json:"weekStart"`
	PreviousWeekStart string       `json:"previousWeekStart"`
	Habits            []HabitTrend `json:"habits"`
}

func countCompleted(habitID string, days []string, ix *Index) int {
	n := 0
	for _, d := range days {
		if ix.IsCompleted(d, habitID) {
			n++
		}
	}
	return n
}

// AnalyzeTrends compares each habit's current window with the previous one.
// Each window has its own index.
func AnalyzeTrends(habits []habit.Habit, current, previous []string, currentIx, previousIx *Index) []HabitTrend {
	out := make([]HabitTrend, 0, len(habits))
	for _, h := range habits {
		cur := countCompleted(h.ID, current, currentIx)
		prev := countCompleted(h.ID, previous, previousIx)
		curPct := Percentage(cur, len(current))
		prevPct := Percentage(prev, len(previous))
		delta := curPct - prevPct
		out = append(out, HabitTrend{
			HabitID:            h.ID,
			Title:              h.Title,
			Completed:          cur,
			Total:              len(current),
			Percentage:         curPct,
			PreviousCompleted:  prev,
			PreviousPercentage: prevPct,
			Delta:              delta,
			Trend:              Classify(delta),
		})
	}
	return out
}
