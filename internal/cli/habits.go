package cli

import (
	"context"
	"strings"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/habit"
)

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Frequency string `help:"Diario, Semanal or Mensual." default:"Diario"`
	Reminder  string `help:"Daily reminder time (HH:MM). Empty disables the reminder."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	store, err := ctx.local()
	if err != nil {
		return err
	}

	req := &habit.CreateHabitRequest{
		Title:     c.Title,
		Frequency: habit.Frequency(c.Frequency),
	}
	if c.Reminder != "" {
		req.Reminder = &habit.Reminder{Enabled: true, Time: c.Reminder}
	}
	h, err := habit.NewHabit(ctx.Request.OwnerID, req)
	if err != nil {
		return err
	}
	if err := store.CreateHabit(context.Background(), h); err != nil {
		return err
	}
	return ctx.print(h)
}

type HabitListCmd struct {
	All bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	store, err := ctx.local()
	if err != nil {
		return err
	}
	habits, err := store.ListHabits(context.Background(), ctx.Request.OwnerID, c.All)
	if err != nil {
		return err
	}
	return ctx.print(habits)
}

type HabitArchiveCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	store, err := ctx.local()
	if err != nil {
		return err
	}
	if err := store.ArchiveHabit(context.Background(), ctx.Request.OwnerID, c.ID); err != nil {
		return err
	}
	return ctx.print(map[string]string{"archived": c.ID})
}

type DoneCmd struct {
	HabitID string `arg:"" help:"Habit id."`
	Date    string `help:"Logical day (YYYY-MM-DD). Defaults to today in --tz."`
	Undo    bool   `help:"Record the day as not completed."`
	Notes   string `help:"Free-form note stored with the day."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	store, err := ctx.local()
	if err != nil {
		return err
	}

	date := strings.TrimSpace(c.Date)
	if date == "" {
		if date, err = ctx.today(); err != nil {
			return err
		}
	} else if _, err := calendar.Parse(date); err != nil {
		return err
	}

	ev := &habit.CompletionEvent{
		UserID:    ctx.Request.OwnerID,
		HabitID:   c.HabitID,
		Date:      date,
		Completed: !c.Undo,
		Notes:     c.Notes,
	}
	if err := store.UpsertEvent(context.Background(), ev); err != nil {
		return err
	}
	return ctx.print(ev)
}
