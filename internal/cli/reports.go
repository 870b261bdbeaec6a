package cli

import (
	"context"

	"habitTrackerAPI/internal/calendar"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	report, err := ctx.Engine.Dashboard(context.Background(), ctx.Request)
	if err != nil {
		return err
	}
	return ctx.print(report)
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	report, err := ctx.Engine.Streak(context.Background(), ctx.Request)
	if err != nil {
		return err
	}
	return ctx.print(report)
}

type WeekCmd struct {
	Monday string `help:"Any day of the week to show (YYYY-MM-DD). Defaults to the current week."`
}

func (c *WeekCmd) Run(ctx *Context) error {
	report, err := ctx.Engine.Week(context.Background(), ctx.Request, c.Monday)
	if err != nil {
		return err
	}
	return ctx.print(report)
}

type MonthCmd struct {
	Start string `help:"First day of the four-week window (YYYY-MM-DD). Defaults to the current week."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	report, err := ctx.Engine.Month(context.Background(), ctx.Request, c.Start)
	if err != nil {
		return err
	}
	return ctx.print(report)
}

type TrendsCmd struct{}

func (c *TrendsCmd) Run(ctx *Context) error {
	report, err := ctx.Engine.Trends(context.Background(), ctx.Request)
	if err != nil {
		return err
	}
	return ctx.print(report)
}

type CalendarCmd struct {
	Year  int `help:"Calendar year. Defaults to the owner's current year."`
	Month int `help:"Calendar month (1-12). Defaults to the owner's current month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	year, month := c.Year, c.Month
	if year == 0 || month == 0 {
		today, err := ctx.today()
		if err != nil {
			return err
		}
		t, err := calendar.Parse(today)
		if err != nil {
			return err
		}
		if year == 0 {
			year = t.Year()
		}
		if month == 0 {
			month = int(t.Month())
		}
	}
	report, err := ctx.Engine.Calendar(context.Background(), ctx.Request, year, month)
	if err != nil {
		return err
	}
	return ctx.print(report)
}
