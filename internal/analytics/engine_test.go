package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitTrackerAPI/internal/habit"
)

// 2024-03-10 03:30 UTC is Saturday 2024-03-09 21:30 in Mexico City.
var saturdayNightMX = time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC)

func mxRequest(now time.Time) Request {
	return Request{OwnerID: "owner", Timezone: "America/Mexico_City", Locale: "es-MX", Now: now}
}

func TestEngine_Dashboard(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("1", "Read")
	store.addHabit("2", "Run")
	store.addHabit("3", "Meditate")
	store.addHabit("4", "Journal")
	store.complete("1", "2024-03-09", "2024-03-08", "2024-03-07")
	store.complete("2", "2024-03-09")
	store.complete("4", "2024-03-09")
	store.complete("1", "2024-03-05")
	// UTC "today" would be the 10th; it must not count.
	store.complete("3", "2024-03-10")

	got, err := NewEngine(store).Dashboard(context.Background(), mxRequest(saturdayNightMX))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", got.Date)
	assert.Equal(t, 4, got.TotalHabits)
	assert.Equal(t, 3, got.CompletedToday)
	assert.Equal(t, 75, got.PercentageToday)
	assert.Equal(t, []string{"Meditate"}, got.RemainingHabits)
	assert.Equal(t, 3, got.Streak)
	assert.Equal(t, TierMedium, got.Tier)
	assert.Equal(t, "Vas bien, hay margen de mejora.", got.Message)
}

func TestEngine_Dashboard_NoHabits(t *testing.T) {
	store := &fakeStore{}
	got, err := NewEngine(store).Dashboard(context.Background(), mxRequest(saturdayNightMX))
	require.NoError(t, err)

	assert.Equal(t, 0, got.PercentageToday)
	assert.Empty(t, got.RemainingHabits)
	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, 1, store.existsCalls, "streak still runs")
}

func TestEngine_Dashboard_ArchivedHabitExcluded(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("1", "Read")
	store.habits = append(store.habits, habit.Habit{ID: "2", UserID: "owner", Title: "Old", Archived: true})
	store.complete("1", "2024-03-09")

	got, err := NewEngine(store).Dashboard(context.Background(), mxRequest(saturdayNightMX))
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalHabits)
	assert.Equal(t, 100, got.PercentageToday)
	assert.Equal(t, TierHigh, got.Tier)
}

func TestEngine_Dashboard_OtherOwnerIsolated(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("1", "Read")
	store.events = append(store.events, habit.CompletionEvent{UserID: "intruder", HabitID: "1", Date: "2024-03-09", Completed: true})

	got, err := NewEngine(store).Dashboard(context.Background(), mxRequest(saturdayNightMX))
	require.NoError(t, err)
	assert.Equal(t, 0, got.CompletedToday)
	assert.Equal(t, 0, got.Streak)
}

func TestEngine_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewEngine(&fakeStore{}).Dashboard(ctx, Request{OwnerID: "owner", Timezone: "Nowhere/City", Now: saturdayNightMX})
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = NewEngine(&fakeStore{}).Week(ctx, Request{OwnerID: "owner"}, "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewEngine(&fakeStore{}).Week(ctx, mxRequest(saturdayNightMX), "03/04/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	down := errors.New("connection refused")
	_, err = NewEngine(&fakeStore{errHabits: down}).Dashboard(ctx, mxRequest(saturdayNightMX))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, down)

	_, err = NewEngine(&fakeStore{errEvents: down}).Trends(ctx, mxRequest(saturdayNightMX))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestEngine_Streak_ShortCircuitsWithoutToday(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("1", "Read")
	store.complete("1", "2024-03-08", "2024-03-07")

	got, err := NewEngine(store).Streak(context.Background(), mxRequest(saturdayNightMX))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, "2024-03-09", got.Date)
	assert.Empty(t, store.rangeCalls)
}

func TestEngine_Streak_SingleRangeFetch(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("1", "Read")
	store.complete("1", "2024-03-09", "2024-03-08")

	got, err := NewEngine(store).Streak(context.Background(), mxRequest(saturdayNightMX))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Streak)
	require.Len(t, store.rangeCalls, 1)
	assert.Equal(t, [2]string{"2023-03-11", "2024-03-09"}, store.rangeCalls[0])
}

func TestEngine_Week_NormalizesAnchor(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("1", "Read")
	store.complete("1", "2024-03-04", "2024-03-05", "2024-03-08", "2024-03-09", "2024-03-10")

	req := mxRequest(saturdayNightMX)
	req.Locale = "en-US"
	got, err := NewEngine(store).Week(context.Background(), req, "2024-03-06")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", got.WeekStart)
	require.Len(t, got.Days, 7)
	assert.Equal(t, "Wednesday", got.Days[2].WeekdayName)
	assert.Equal(t, 71, got.OverallProgress)
	assert.Equal(t, [][2]string{{"2024-03-04", "2024-03-10"}}, store.rangeCalls)
	assert.Equal(t, 1, store.habitCalls)
}

func TestEngine_Week_DefaultsToCurrentWeek(t *testing.T) {
	got, err := NewEngine(&fakeStore{}).Week(context.Background(), mxRequest(saturdayNightMX), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", got.WeekStart)
}

func TestEngine_Month(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("a", "Read")
	store.addHabit("b", "Run")
	store.complete("a", "2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15", "2024-02-16", "2024-02-17", "2024-02-18")
	store.complete("a", "2024-02-26")
	store.complete("b", "2024-02-26")

	got, err := NewEngine(store).Month(context.Background(), mxRequest(saturdayNightMX), "2024-02-14")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-12", got.Start)
	assert.Equal(t, []WeekPercentage{
		{Label: "Week 1", Percentage: 50},
		{Label: "Week 2", Percentage: 0},
		{Label: "Week 3", Percentage: 14},
		{Label: "Week 4", Percentage: 0},
	}, got.Weeks)
	assert.Equal(t, MonthWeeks, store.habitCalls, "habit set is read per week")
	assert.Equal(t, [][2]string{{"2024-02-12", "2024-03-10"}}, store.rangeCalls)
}

func TestEngine_Trends(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("a", "Read")
	store.complete("a", "2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14", "2024-03-15")
	store.complete("a", "2024-03-04", "2024-03-07")

	wednesday := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	got, err := NewEngine(store).Trends(context.Background(), mxRequest(wednesday))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", got.WeekStart)
	assert.Equal(t, "2024-03-04", got.PreviousWeekStart)
	require.Len(t, got.Habits, 1)
	assert.Equal(t, 42, got.Habits[0].Delta)
	assert.Equal(t, TrendUp, got.Habits[0].Trend)
	assert.ElementsMatch(t, [][2]string{{"2024-03-11", "2024-03-17"}, {"2024-03-04", "2024-03-10"}}, store.rangeCalls)
}

func TestEngine_Calendar(t *testing.T) {
	store := &fakeStore{}
	store.addHabit("a", "Read")
	store.addHabit("b", "Run")
	store.complete("a", "2024-03-01", "2024-03-09")
	store.complete("b", "2024-03-09")

	got, err := NewEngine(store).Calendar(context.Background(), mxRequest(saturdayNightMX), 2024, 3)
	require.NoError(t, err)

	require.Len(t, got.Days, 31)
	assert.Equal(t, 50, got.Days[0].Percentage)
	assert.Equal(t, CalendarDay{Date: "2024-03-09", Completed: 2, Total: 2, Percentage: 100, IsToday: true}, got.Days[8])
	assert.False(t, got.Days[9].IsToday)

	_, err = NewEngine(store).Calendar(context.Background(), mxRequest(saturdayNightMX), 2024, 0)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
