package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitTrackerAPI/internal/habit"
)

func TestIndex_Lookups(t *testing.T) {
	events := []habit.CompletionEvent{
		{HabitID: "a", Date: "2024-01-01", Completed: true},
		{HabitID: "b", Date: "2024-01-01", Completed: false},
		{HabitID: "b", Date: "2024-01-02", Completed: true},
	}
	ix := NewIndex(events)

	assert.Equal(t, 3, ix.Len())
	assert.True(t, ix.IsCompleted("2024-01-01", "a"))
	assert.False(t, ix.IsCompleted("2024-01-01", "b"), "a record with completed=false is not done")
	assert.False(t, ix.IsCompleted("2024-01-03", "a"), "absence means not done")

	_, ok := ix.Lookup("2024-01-01", "b")
	assert.True(t, ok)

	assert.True(t, ix.AnyCompleted("2024-01-02"))
	assert.False(t, ix.AnyCompleted("2024-01-05"))

	assert.Equal(t, 1, ix.CompletedAmong("2024-01-01", habitsOf("a", "b", "c")))
	assert.Equal(t, 0, ix.CompletedAmong("2024-01-02", habitsOf("a")))
}

func TestIndex_NilAndEmpty(t *testing.T) {
	var nilIx *Index
	assert.Equal(t, 0, nilIx.Len())
	assert.False(t, nilIx.IsCompleted("2024-01-01", "a"))
	assert.False(t, nilIx.AnyCompleted("2024-01-01"))

	empty := NewIndex(nil)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.AnyCompleted("2024-01-01"))
}

func TestIndex_AnyCompletedIgnoresHabitSet(t *testing.T) {
	// A completed record of a habit since archived still counts at day level.
	ix := NewIndex(done("archived", "2024-01-01"))
	assert.True(t, ix.AnyCompleted("2024-01-01"))
	assert.Equal(t, 0, ix.CompletedAmong("2024-01-01", habitsOf("active")))
}
