package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHabit_Defaults(t *testing.T) {
	h, err := NewHabit("u1", &CreateHabitRequest{Title: "  Read  ", Frequency: "Hourly"})
	require.NoError(t, err)

	assert.Equal(t, "u1", h.UserID)
	assert.Equal(t, "Read", h.Title)
	assert.Equal(t, FrequencyDaily, h.Frequency)
	assert.Equal(t, Reminder{Enabled: false, Time: "08:00"}, h.Reminder)
	assert.False(t, h.Archived)
}

func TestNewHabit_Errors(t *testing.T) {
	_, err := NewHabit("u1", &CreateHabitRequest{Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewHabit("u1", &CreateHabitRequest{Title: "Run", Reminder: &Reminder{Enabled: true, Time: "25:00"}})
	assert.ErrorIs(t, err, ErrInvalidReminderTime)
}

func TestUpdateHabitRequest_ApplyOnlyPresentFields(t *testing.T) {
	h := &Habit{Title: "Run", Description: "5k", Frequency: FrequencyDaily, Icon: "shoe"}

	title := "Walk"
	archived := true
	req := &UpdateHabitRequest{Title: &title, Archived: &archived}
	require.NoError(t, req.Validate())
	req.Apply(h)

	assert.Equal(t, "Walk", h.Title)
	assert.Equal(t, "5k", h.Description)
	assert.Equal(t, "shoe", h.Icon)
	assert.True(t, h.Archived)
}

func TestUpdateHabitRequest_Validate(t *testing.T) {
	bad := Frequency("Yearly")
	assert.ErrorIs(t, (&UpdateHabitRequest{Frequency: &bad}).Validate(), ErrInvalidFrequency)

	empty := ""
	assert.ErrorIs(t, (&UpdateHabitRequest{Title: &empty}).Validate(), ErrTitleRequired)

	req := &UpdateHabitRequest{Reminder: &Reminder{Enabled: true}}
	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultReminderTime, req.Reminder.Time)
}
