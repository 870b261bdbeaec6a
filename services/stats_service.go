package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"habitTrackerAPI/internal/analytics"
	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/user"
)

var (
	reportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_report_duration_seconds",
			Help:    "Time spent building an analytics report",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)
	reportErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_report_errors_total",
			Help: "Analytics reports that failed",
		},
		[]string{"report"},
	)
)

// ReportCollectors are registered by main alongside the HTTP metrics.
func ReportCollectors() []prometheus.Collector {
	return []prometheus.Collector{reportDuration, reportErrors}
}

// ProfileLookup resolves the auth subject to the owner's profile.
type ProfileLookup interface {
	GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error)
}

// StatsService builds reports for an authenticated user: it looks up the
// owner's timezone and locale and hands them to the analytics engine.
type StatsService struct {
	profiles ProfileLookup
	engine   *analytics.Engine
	now      func() time.Time
}

func NewStatsService(profiles ProfileLookup, store analytics.EventStore) *StatsService {
	return &StatsService{
		profiles: profiles,
		engine:   analytics.NewEngine(store),
		now:      time.Now,
	}
}

type DashboardResponse struct {
	Name string `json:"name"`
	*analytics.DashboardReport
}

func (s *StatsService) request(ctx context.Context, clerkID string) (analytics.Request, *user.User, error) {
	u, err := s.profiles.GetUserByClerkID(ctx, clerkID)
	if errors.Is(err, ErrNotFound) {
		return analytics.Request{}, nil, err
	}
	if err != nil {
		return analytics.Request{}, nil, fmt.Errorf("%w: profile lookup: %w", analytics.ErrStoreUnavailable, err)
	}
	return analytics.Request{
		OwnerID:  u.ID,
		Timezone: u.Timezone,
		Locale:   u.Locale,
		Now:      s.now(),
	}, u, nil
}

func observe[T any](report string, build func() (T, error)) (T, error) {
	start := time.Now()
	out, err := build()
	reportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	if err != nil {
		reportErrors.WithLabelValues(report).Inc()
		logger.Error("report failed", "report", report, "error", err)
	}
	return out, err
}

func (s *StatsService) Dashboard(ctx context.Context, clerkID string) (*DashboardResponse, error) {
	return observe("dashboard", func() (*DashboardResponse, error) {
		req, u, err := s.request(ctx, clerkID)
		if err != nil {
			return nil, err
		}
		report, err := s.engine.Dashboard(ctx, req)
		if err != nil {
			return nil, err
		}
		return &DashboardResponse{Name: u.FirstName(), DashboardReport: report}, nil
	})
}

func (s *StatsService) Streak(ctx context.Context, clerkID string) (*analytics.StreakReport, error) {
	return observe("streak", func() (*analytics.StreakReport, error) {
		req, _, err := s.request(ctx, clerkID)
		if err != nil {
			return nil, err
		}
		return s.engine.Streak(ctx, req)
	})
}

func (s *StatsService) Week(ctx context.Context, clerkID, monday string) (*analytics.WeekReport, error) {
	return observe("week", func() (*analytics.WeekReport, error) {
		req, _, err := s.request(ctx, clerkID)
		if err != nil {
			return nil, err
		}
		return s.engine.Week(ctx, req, monday)
	})
}

func (s *StatsService) Month(ctx context.Context, clerkID, start string) (*analytics.MonthReport, error) {
	return observe("month", func() (*analytics.MonthReport, error) {
		req, _, err := s.request(ctx, clerkID)
		if err != nil {
			return nil, err
		}
		return s.engine.Month(ctx, req, start)
	})
}

func (s *StatsService) Trends(ctx context.Context, clerkID string) (*analytics.TrendReport, error) {
	return observe("trends", func() (*analytics.TrendReport, error) {
		req, _, err := s.request(ctx, clerkID)
		if err != nil {
			return nil, err
		}
		return s.engine.Trends(ctx, req)
	})
}

// Calendar defaults a zero year or month to the owner's current local month.
func (s *StatsService) Calendar(ctx context.Context, clerkID string, year, month int) (*analytics.CalendarReport, error) {
	return observe("calendar", func() (*analytics.CalendarReport, error) {
		req, _, err := s.request(ctx, clerkID)
		if err != nil {
			return nil, err
		}
		if year == 0 || month == 0 {
			res, err := calendar.New(req.Timezone)
			if err != nil {
				return nil, err
			}
			local := req.Now.In(res.Location())
			if year == 0 {
				year = local.Year()
			}
			if month == 0 {
				month = int(local.Month())
			}
		}
		return s.engine.Calendar(ctx, req, year, month)
	})
}
