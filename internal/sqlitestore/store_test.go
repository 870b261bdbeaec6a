package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitTrackerAPI/internal/analytics"
	"habitTrackerAPI/internal/habit"
)

var _ analytics.EventStore = (*Store)(nil)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "habits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func addHabit(t *testing.T, s *Store, owner, title string) habit.Habit {
	t.Helper()
	h := habit.Habit{UserID: owner, Title: title, Frequency: habit.FrequencyDaily, Reminder: habit.Reminder{Time: "08:00"}}
	require.NoError(t, s.CreateHabit(context.Background(), &h))
	return h
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	addHabit(t, s, "owner", "Read")
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()
	hs, err := s.ListActiveHabits(context.Background(), "owner")
	require.NoError(t, err)
	assert.Len(t, hs, 1)
}

func TestHabits(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	read := addHabit(t, s, "owner", "Read")
	run := addHabit(t, s, "owner", "Run")
	addHabit(t, s, "someone-else", "Swim")
	assert.NotEmpty(t, read.ID)
	assert.False(t, read.CreatedAt.IsZero())

	got, err := s.GetHabit(ctx, "owner", read.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Title)
	assert.Equal(t, habit.FrequencyDaily, got.Frequency)

	_, err = s.GetHabit(ctx, "someone-else", read.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.ArchiveHabit(ctx, "owner", run.ID))
	assert.ErrorIs(t, s.ArchiveHabit(ctx, "owner", "missing"), ErrNotFound)

	active, err := s.ListActiveHabits(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, read.ID, active[0].ID)

	all, err := s.ListHabits(ctx, "owner", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpsertEvent_OnePerDay(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	h := addHabit(t, s, "owner", "Read")

	first := habit.CompletionEvent{UserID: "owner", HabitID: h.ID, Date: "2024-03-09", Completed: true}
	require.NoError(t, s.UpsertEvent(ctx, &first))

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	second := habit.CompletionEvent{UserID: "owner", HabitID: h.ID, Date: "2024-03-09", Completed: false, Notes: "skipped"}
	require.NoError(t, s.UpsertEvent(ctx, &second))
	assert.Equal(t, first.ID, second.ID)

	events, err := s.ListCompletionEvents(ctx, "owner", "2024-03-09", "2024-03-09")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Completed)
	assert.Equal(t, "skipped", events[0].Notes)
}

func TestUpsertEvent_UnknownHabit(t *testing.T) {
	s := setupStore(t)
	ev := habit.CompletionEvent{UserID: "owner", HabitID: "nope", Date: "2024-03-09", Completed: true}
	assert.ErrorIs(t, s.UpsertEvent(context.Background(), &ev), ErrNotFound)
}

func TestListCompletionEvents_RangeAndOwner(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	h := addHabit(t, s, "owner", "Read")
	other := addHabit(t, s, "other", "Read")

	for _, d := range []string{"2024-03-03", "2024-03-04", "2024-03-10", "2024-03-11"} {
		ev := habit.CompletionEvent{UserID: "owner", HabitID: h.ID, Date: d, Completed: true}
		require.NoError(t, s.UpsertEvent(ctx, &ev))
	}
	ev := habit.CompletionEvent{UserID: "other", HabitID: other.ID, Date: "2024-03-05", Completed: true}
	require.NoError(t, s.UpsertEvent(ctx, &ev))

	events, err := s.ListCompletionEvents(ctx, "owner", "2024-03-04", "2024-03-10")
	require.NoError(t, err)
	var dates []string
	for _, e := range events {
		dates = append(dates, e.Date)
	}
	assert.Equal(t, []string{"2024-03-04", "2024-03-10"}, dates)
}

func TestAnyCompletionOnDate_CountsArchived(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	h := addHabit(t, s, "owner", "Read")
	ev := habit.CompletionEvent{UserID: "owner", HabitID: h.ID, Date: "2024-03-09", Completed: true}
	require.NoError(t, s.UpsertEvent(ctx, &ev))
	require.NoError(t, s.ArchiveHabit(ctx, "owner", h.ID))

	ok, err := s.AnyCompletionOnDate(ctx, "owner", "2024-03-09")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AnyCompletionOnDate(ctx, "owner", "2024-03-08")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	h := addHabit(t, s, "owner", "Read")
	ev := habit.CompletionEvent{UserID: "owner", HabitID: h.ID, Date: "2024-03-09", Completed: true}
	require.NoError(t, s.UpsertEvent(ctx, &ev))

	assert.ErrorIs(t, s.DeleteEvent(ctx, "intruder", ev.ID), ErrNotFound)
	require.NoError(t, s.DeleteEvent(ctx, "owner", ev.ID))
	assert.ErrorIs(t, s.DeleteEvent(ctx, "owner", ev.ID), ErrNotFound)
}

func TestEngineOverSQLite(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	a := addHabit(t, s, "owner", "Read")
	addHabit(t, s, "owner", "Run")
	for _, d := range []string{"2024-03-07", "2024-03-08", "2024-03-09"} {
		ev := habit.CompletionEvent{UserID: "owner", HabitID: a.ID, Date: d, Completed: true}
		require.NoError(t, s.UpsertEvent(ctx, &ev))
	}

	report, err := analytics.NewEngine(s).Dashboard(ctx, analytics.Request{
		OwnerID:  "owner",
		Timezone: "America/Mexico_City",
		Locale:   "en-US",
		Now:      time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, report.PercentageToday)
	assert.Equal(t, []string{"Run"}, report.RemainingHabits)
	assert.Equal(t, 3, report.Streak)
}

func TestListActiveHabits_CreationOrder(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	// Same stamp for every insert so only insertion order can decide.
	frozen := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	for _, title := range []string{"first", "second", "third"} {
		addHabit(t, s, "owner", title)
	}

	hs, err := s.ListActiveHabits(ctx, "owner")
	require.NoError(t, err)
	titles := make([]string, 0, len(hs))
	for _, h := range hs {
		titles = append(titles, h.Title)
	}
	assert.Equal(t, []string{"first", "second", "third"}, titles)

	report, err := analytics.NewEngine(s).Dashboard(ctx, analytics.Request{
		OwnerID:  "owner",
		Timezone: "UTC",
		Now:      frozen,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, report.RemainingHabits)
}
