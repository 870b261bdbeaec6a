package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitTrackerAPI/internal/calendar"
)

func TestClassify_Deadband(t *testing.T) {
	tests := []struct {
		delta int
		want  Trend
	}{
		{0, TrendStable},
		{3, TrendStable},
		{-3, TrendStable},
		{4, TrendUp},
		{-4, TrendDown},
		{42, TrendUp},
		{-100, TrendDown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.delta), "delta=%d", tt.delta)
	}
}

func TestAnalyzeTrends(t *testing.T) {
	current, err := calendar.WeekDays("2024-03-11")
	require.NoError(t, err)
	previous, err := calendar.WeekDays("2024-03-04")
	require.NoError(t, err)

	curIx := NewIndex(done("a", current[:5]...))
	prevEvents := done("a", previous[0], previous[3])
	prevEvents = append(prevEvents, done("c", previous[2])...)
	prevIx := NewIndex(prevEvents)

	got := AnalyzeTrends(habitsOf("a", "b", "c"), current, previous, curIx, prevIx)
	require.Len(t, got, 3)

	a := got[0]
	assert.Equal(t, "a", a.HabitID)
	assert.Equal(t, 5, a.Completed)
	assert.Equal(t, 7, a.Total)
	assert.Equal(t, 71, a.Percentage)
	assert.Equal(t, 29, a.PreviousPercentage)
	assert.Equal(t, 42, a.Delta)
	assert.Equal(t, TrendUp, a.Trend)

	assert.Equal(t, TrendStable, got[1].Trend)
	assert.Equal(t, 0, got[1].Delta)

	assert.Equal(t, -14, got[2].Delta)
	assert.Equal(t, TrendDown, got[2].Trend)
}

func TestAnalyzeTrends_WindowsUseTheirOwnIndex(t *testing.T) {
	current, _ := calendar.WeekDays("2024-03-11")
	previous, _ := calendar.WeekDays("2024-03-04")
	// The current index holds previous-week rows; they must not leak into the previous window.
	curIx := NewIndex(done("a", previous...))
	got := AnalyzeTrends(habitsOf("a"), current, previous, curIx, NewIndex(nil))
	assert.Equal(t, 0, got[0].Completed)
	assert.Equal(t, 0, got[0].PreviousCompleted)
}

func TestAnalyzeTrends_NoHabits(t *testing.T) {
	current, _ := calendar.WeekDays("2024-03-11")
	previous, _ := calendar.WeekDays("2024-03-04")
	got := AnalyzeTrends(nil, current, previous, NewIndex(nil), NewIndex(nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
