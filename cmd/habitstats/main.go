package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitTrackerAPI/internal/analytics"
	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/cli"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/sqlitestore"
	"habitTrackerAPI/services"
)

var CLI struct {
	DB       string `help:"SQLite file path or postgres:// URL." default:"~/.local/share/habitstats/habits.db" env:"HABITSTATS_DB"`
	Owner    string `help:"Owner id the reports are scoped to (users.id when reading Postgres)." default:"local" env:"HABITSTATS_OWNER"`
	TZ       string `name:"tz" help:"IANA timezone of the owner." default:"UTC" env:"HABITSTATS_TZ"`
	Locale   string `help:"Locale for weekday names and messages." default:"es-MX" env:"HABITSTATS_LOCALE"`
	At       string `help:"Reference instant (RFC3339). Defaults to now."`
	LogLevel string `help:"Log level." default:"warn"`

	Dashboard cli.DashboardCmd `cmd:"" help:"Show today's progress and streak." default:"1"`
	Streak    cli.StreakCmd    `cmd:"" help:"Show the current streak."`
	Week      cli.WeekCmd      `cmd:"" help:"Show the week view."`
	Month     cli.MonthCmd     `cmd:"" help:"Show the four-week view."`
	Trends    cli.TrendsCmd    `cmd:"" help:"Compare this week with the last one per habit."`
	Calendar  cli.CalendarCmd  `cmd:"" help:"Show per-day progress for a month."`
	Habit     struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List habits."`
		Archive cli.HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	} `cmd:"" help:"Manage habits (SQLite only)."`
	Done cli.DoneCmd `cmd:"" help:"Mark a habit done for a day (SQLite only)."`
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return home + "/" + rest
		}
	}
	return path
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func run(kctx *kong.Context) error {
	now := time.Now()
	if CLI.At != "" {
		var err error
		if now, err = time.Parse(time.RFC3339, CLI.At); err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}
	if _, err := calendar.LoadLocation(CLI.TZ); err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	appCtx := &cli.Context{
		Request: analytics.Request{
			OwnerID:  CLI.Owner,
			Timezone: CLI.TZ,
			Locale:   CLI.Locale,
			Now:      now,
		},
		Out: os.Stdout,
	}

	if isPostgres(CLI.DB) {
		pool, err := pgxpool.New(ctx, CLI.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		appCtx.Engine = analytics.NewEngine(services.NewEventStore(pool))
	} else {
		store, err := sqlitestore.Open(ctx, expandHome(CLI.DB))
		if err != nil {
			return err
		}
		defer store.Close()
		appCtx.Local = store
		appCtx.Engine = analytics.NewEngine(store)
	}

	return kctx.Run(appCtx)
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("habitstats"),
		kong.Description("Habit progress reports from the command line"),
		kong.UsageOnError(),
	)
	logger.Init(logger.Config{Level: CLI.LogLevel})

	if err := run(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
