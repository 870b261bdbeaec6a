package analytics

import (
	"context"
	"sync"

	"habitTrackerAPI/internal/habit"
)

// fakeStore is an in-memory EventStore that counts calls.
type fakeStore struct {
	mu     sync.Mutex
	habits []habit.Habit
	events []habit.CompletionEvent

	errHabits error
	errEvents error

	habitCalls  int
	rangeCalls  [][2]string
	existsCalls int
}

func (f *fakeStore) ListActiveHabits(_ context.Context, ownerID string) ([]habit.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.habitCalls++
	if f.errHabits != nil {
		return nil, f.errHabits
	}
	var out []habit.Habit
	for _, h := range f.habits {
		if h.UserID == ownerID && !h.Archived {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCompletionEvents(_ context.Context, ownerID, start, end string) ([]habit.CompletionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rangeCalls = append(f.rangeCalls, [2]string{start, end})
	if f.errEvents != nil {
		return nil, f.errEvents
	}
	var out []habit.CompletionEvent
	for _, ev := range f.events {
		if ev.UserID == ownerID && ev.Date >= start && ev.Date <= end {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeStore) AnyCompletionOnDate(_ context.Context, ownerID, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls++
	if f.errEvents != nil {
		return false, f.errEvents
	}
	for _, ev := range f.events {
		if ev.UserID == ownerID && ev.Date == date && ev.Completed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) addHabit(id, title string) {
	f.habits = append(f.habits, habit.Habit{ID: id, UserID: "owner", Title: title})
}

func (f *fakeStore) complete(habitID string, dates ...string) {
	for _, d := range dates {
		f.events = append(f.events, habit.CompletionEvent{
			ID: habitID + "@" + d, UserID: "owner", HabitID: habitID, Date: d, Completed: true,
		})
	}
}

func habitsOf(ids ...string) []habit.Habit {
	out := make([]habit.Habit, len(ids))
	for i, id := range ids {
		out[i] = habit.Habit{ID: id, UserID: "owner", Title: "Habit " + id}
	}
	return out
}

func done(habitID string, dates ...string) []habit.CompletionEvent {
	out := make([]habit.CompletionEvent, len(dates))
	for i, d := range dates {
		out[i] = habit.CompletionEvent{UserID: "owner", HabitID: habitID, Date: d, Completed: true}
	}
	return out
}
