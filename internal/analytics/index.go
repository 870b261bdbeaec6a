package analytics

import "habitTrackerAPI/internal/habit"

// Index maps date -> habitID -> event for one fetched range. It is built per
// request and never cached; absence of a record means "not done".
type Index struct {
	byDate map[string]map[string]habit.CompletionEvent
	size   int
}

func NewIndex(events []habit.CompletionEvent) *Index {
	ix := &Index{byDate: make(map[string]map[string]habit.CompletionEvent)}
	for _, ev := range events {
		day, ok := ix.byDate[ev.Date]
		if !ok {
			day = make(map[string]habit.CompletionEvent)
			ix.byDate[ev.Date] = day
		}
		if _, dup := day[ev.HabitID]; !dup {
			ix.size++
		}
		day[ev.HabitID] = ev
	}
	return ix
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return ix.size
}

func (ix *Index) Lookup(date, habitID string) (habit.CompletionEvent, bool) {
	if ix == nil {
		return habit.CompletionEvent{}, false
	}
	ev, ok := ix.byDate[date][habitID]
	return ev, ok
}

func (ix *Index) IsCompleted(date, habitID string) bool {
	ev, ok := ix.Lookup(date, habitID)
	return ok && ev.Completed
}

// AnyCompleted is the day-level existence check: true when any habit,
// archived or not, has a completed record on date.
func (ix *Index) AnyCompleted(date string) bool {
	if ix == nil {
		return false
	}
	for _, ev := range ix.byDate[date] {
		if ev.Completed {
			return true
		}
	}
	return false
}

// CompletedAmong counts the habits of the given set completed on date.
func (ix *Index) CompletedAmong(date string, habits []habit.Habit) int {
	n := 0
	for _, h := range habits {
		if ix.IsCompleted(date, h.ID) {
			n++
		}
	}
	return n
}
