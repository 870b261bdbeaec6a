// Package analytics turns a user's habits and completion log into read-only
// reports: today's dashboard, streak, week and month views, per-habit trend
// and a month calendar.
//
// The engine never reads the wall clock or global locale: every call takes the
// owner's timezone, locale and a reference instant. It holds no state between
// calls; each report fetches the date range it needs once and computes from a
// fresh Index.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/habit"
)

// EventStore is the read side of the persistence layer. Every call is scoped
// to one owner. Date bounds are inclusive YYYY-MM-DD strings.
type EventStore interface {
	ListActiveHabits(ctx context.Context, ownerID string) ([]habit.Habit, error)
	ListCompletionEvents(ctx context.Context, ownerID, start, end string) ([]habit.CompletionEvent, error)
	AnyCompletionOnDate(ctx context.Context, ownerID, date string) (bool, error)
}

// Request identifies whose report to build and as of when.
type Request struct {
	OwnerID  string
	Timezone string
	Locale   string
	Now      time.Time
}

func (r Request) resolve() (*calendar.Resolver, error) {
	if r.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}
	if r.Now.IsZero() {
		return nil, fmt.Errorf("%w: reference instant is required", ErrInvalidRequest)
	}
	return calendar.New(r.Timezone)
}

type Engine struct {
	store    EventStore
	lookback int
}

func NewEngine(store EventStore) *Engine {
	return &Engine{store: store, lookback: StreakLookbackDays}
}

type DashboardReport struct {
	Date string `json:"date"`
	DashboardSummary
	Streak int `json:"streak"`
}

type StreakReport struct {
	Date   string `json:"date"`
	Streak int    `json:"streak"`
}

func (e *Engine) habits(ctx context.Context, ownerID string) ([]habit.Habit, error) {
	hs, err := e.store.ListActiveHabits(ctx, ownerID)
	if err != nil {
		return nil, storeErr("list active habits", err)
	}
	// Stores filter already; this keeps an archived row from ever counting.
	active := hs[:0:0]
	for _, h := range hs {
		if !h.Archived {
			active = append(active, h)
		}
	}
	return active, nil
}

func (e *Engine) index(ctx context.Context, ownerID, start, end string) (*Index, error) {
	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, err
	}
	events, err := e.store.ListCompletionEvents(ctx, ownerID, start, end)
	if err != nil {
		return nil, storeErr("list completion events", err)
	}
	return NewIndex(events), nil
}

func (e *Engine) streak(ctx context.Context, ownerID, today string) (int, error) {
	exists, err := e.store.AnyCompletionOnDate(ctx, ownerID, today)
	if err != nil {
		return 0, storeErr("completion exists", err)
	}
	if !exists {
		return 0, nil
	}
	start, err := calendar.AddDays(today, -(e.lookback - 1))
	if err != nil {
		return 0, err
	}
	ix, err := e.index(ctx, ownerID, start, today)
	if err != nil {
		return 0, err
	}
	return Streak(today, ix, e.lookback)
}

// Dashboard reads today's habits, today's events and the streak concurrently.
func (e *Engine) Dashboard(ctx context.Context, req Request) (*DashboardReport, error) {
	res, err := req.resolve()
	if err != nil {
		return nil, err
	}
	today := res.Today(req.Now)

	var (
		habits []habit.Habit
		ix     *Index
		streak int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		habits, err = e.habits(gctx, req.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		ix, err = e.index(gctx, req.OwnerID, today, today)
		return err
	})
	g.Go(func() (err error) {
		streak, err = e.streak(gctx, req.OwnerID, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardReport{
		Date:             today,
		DashboardSummary: Summarize(habits, today, ix, calendar.Language(req.Locale)),
		Streak:           streak,
	}, nil
}

func (e *Engine) Streak(ctx context.Context, req Request) (*StreakReport, error) {
	res, err := req.resolve()
	if err != nil {
		return nil, err
	}
	today := res.Today(req.Now)
	streak, err := e.streak(ctx, req.OwnerID, today)
	if err != nil {
		return nil, err
	}
	return &StreakReport{Date: today, Streak: streak}, nil
}

// anchor normalizes date to its Monday, or returns the current week's Monday
// when date is empty.
func anchor(res *calendar.Resolver, now time.Time, date string) (string, error) {
	if date == "" {
		return res.CurrentWeekStart(now), nil
	}
	return calendar.WeekStart(date)
}

// Week builds the week view for the week containing monday (default: this week).
// The active habit set is read once for the whole week.
func (e *Engine) Week(ctx context.Context, req Request, monday string) (*WeekReport, error) {
	res, err := req.resolve()
	if err != nil {
		return nil, err
	}
	start, err := anchor(res, req.Now, monday)
	if err != nil {
		return nil, err
	}
	days, err := calendar.WeekDays(start)
	if err != nil {
		return nil, err
	}

	var (
		habits []habit.Habit
		ix     *Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		habits, err = e.habits(gctx, req.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		ix, err = e.index(gctx, req.OwnerID, days[0], days[len(days)-1])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := SummarizeWeek(days, habits, ix, req.Locale)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Month builds four consecutive week figures starting at the week of start
// (default: this week). The active habit set is read separately for every
// week, so a habit added or archived mid-read only affects the later weeks.
func (e *Engine) Month(ctx context.Context, req Request, start string) (*MonthReport, error) {
	res, err := req.resolve()
	if err != nil {
		return nil, err
	}
	first, err := anchor(res, req.Now, start)
	if err != nil {
		return nil, err
	}
	anchors, err := calendar.Weeks(first, MonthWeeks)
	if err != nil {
		return nil, err
	}
	weeks := make([][]string, len(anchors))
	for i, a := range anchors {
		if weeks[i], err = calendar.WeekDays(a); err != nil {
			return nil, err
		}
	}
	last := weeks[len(weeks)-1]

	habitsPerWeek := make([][]habit.Habit, len(weeks))
	var ix *Index
	g, gctx := errgroup.WithContext(ctx)
	for i := range weeks {
		g.Go(func() (err error) {
			habitsPerWeek[i], err = e.habits(gctx, req.OwnerID)
			return err
		})
	}
	g.Go(func() (err error) {
		ix, err = e.index(gctx, req.OwnerID, first, last[len(last)-1])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary, err := SummarizeMonth(weeks, habitsPerWeek, ix)
	if err != nil {
		return nil, err
	}
	return &MonthReport{Start: first, Weeks: summary}, nil
}

// Trends compares this Monday-anchored week with the one before it, per habit.
func (e *Engine) Trends(ctx context.Context, req Request) (*TrendReport, error) {
	res, err := req.resolve()
	if err != nil {
		return nil, err
	}
	current := res.CurrentWeekStart(req.Now)
	previous, err := calendar.AddDays(current, -calendar.DaysPerWeek)
	if err != nil {
		return nil, err
	}
	curDays, err := calendar.WeekDays(current)
	if err != nil {
		return nil, err
	}
	prevDays, err := calendar.WeekDays(previous)
	if err != nil {
		return nil, err
	}

	var (
		habits       []habit.Habit
		curIx, prvIx *Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		habits, err = e.habits(gctx, req.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		curIx, err = e.index(gctx, req.OwnerID, curDays[0], curDays[6])
		return err
	})
	g.Go(func() (err error) {
		prvIx, err = e.index(gctx, req.OwnerID, prevDays[0], prevDays[6])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TrendReport{
		WeekStart:         current,
		PreviousWeekStart: previous,
		Habits:            AnalyzeTrends(habits, curDays, prevDays, curIx, prvIx),
	}, nil
}

// Calendar lays out the given month against today's active habits.
func (e *Engine) Calendar(ctx context.Context, req Request, year, month int) (*CalendarReport, error) {
	res, err := req.resolve()
	if err != nil {
		return nil, err
	}
	days, err := calendar.MonthDays(year, month)
	if err != nil {
		return nil, err
	}

	var (
		habits []habit.Habit
		ix     *Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		habits, err = e.habits(gctx, req.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		ix, err = e.index(gctx, req.OwnerID, days[0], days[len(days)-1])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := BuildCalendar(year, month, days, res.Today(req.Now), habits, ix)
	return &report, nil
}
