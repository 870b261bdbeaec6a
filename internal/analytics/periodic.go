package analytics

import (
	"fmt"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/habit"
)

type DayProgress struct {
	Date        string `json:"date"`
	WeekdayName string `json:"weekdayName"`
	Percentage  int    `json:"percentage"`
}

type WeekReport struct {
	WeekStart       string        `json:"weekStart"`
	Days            []DayProgress `json:"days"`
	OverallProgress int           `json:"overallProgress"`
	// DailyAverage is derived from the rounded daily percentages, so it can
	// drift slightly from a literal average of raw counts.
	DailyAverage int `json:"dailyAverage"`
}

type WeekPercentage struct {
	Label      string `json:"label"`
	Percentage int    `json:"percentage"`
}

type MonthReport struct {
	Start string           `json:"start"`
	Weeks []WeekPercentage `json:"weeks"`
}

// MonthWeeks is the fixed window of the month view.
const MonthWeeks = 4

func dailyPercentages(days []string, habits []habit.Habit, ix *Index) []int {
	pcts := make([]int, len(days))
	for i, d := range days {
		pcts[i] = Percentage(ix.CompletedAmong(d, habits), len(habits))
	}
	return pcts
}

// SummarizeWeek computes the week view over days (an anchor and its six
// successors) for one snapshot of the active habits.
func SummarizeWeek(days []string, habits []habit.Habit, ix *Index, locale string) (WeekReport, error) {
	if len(days) == 0 {
		return WeekReport{}, fmt.Errorf("%w: empty week", ErrInvalidRequest)
	}
	total := len(habits)
	pcts := dailyPercentages(days, habits, ix)

	report := WeekReport{WeekStart: days[0], Days: make([]DayProgress, len(days))}
	counts := make([]int, len(days))
	for i, d := range days {
		name, err := calendar.WeekdayName(d, locale)
		if err != nil {
			return WeekReport{}, err
		}
		report.Days[i] = DayProgress{Date: d, WeekdayName: name, Percentage: pcts[i]}
		counts[i] = roundHalfUp(float64(pcts[i]) / 100 * float64(total))
	}
	report.OverallProgress = roundHalfUp(mean(pcts))
	report.DailyAverage = roundHalfUp(mean(counts))
	return report, nil
}

// WeekMean is the rounded mean of the daily percentages of one week.
func WeekMean(days []string, habits []habit.Habit, ix *Index) int {
	return roundHalfUp(mean(dailyPercentages(days, habits, ix)))
}

// SummarizeMonth labels each week "Week n". habitsPerWeek[i] is the active
// habit set as read for week i; the sets may differ when habits changed
// while the window was being read.
func SummarizeMonth(weeks [][]string, habitsPerWeek [][]habit.Habit, ix *Index) ([]WeekPercentage, error) {
	if len(weeks) != len(habitsPerWeek) {
		return nil, fmt.Errorf("%w: %d weeks but %d habit sets", ErrInvalidRequest, len(weeks), len(habitsPerWeek))
	}
	out := make([]WeekPercentage, len(weeks))
	for i, days := range weeks {
		out[i] = WeekPercentage{
			Label:      fmt.Sprintf("Week %d", i+1),
			Percentage: WeekMean(days, habitsPerWeek[i], ix),
		}
	}
	return out, nil
}
