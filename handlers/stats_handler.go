package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"habitTrackerAPI/internal/analytics"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

// StatsProvider is satisfied by *services.StatsService.
type StatsProvider interface {
	Dashboard(ctx context.Context, clerkID string) (*services.DashboardResponse, error)
	Streak(ctx context.Context, clerkID string) (*analytics.StreakReport, error)
	Week(ctx context.Context, clerkID, monday string) (*analytics.WeekReport, error)
	Month(ctx context.Context, clerkID, start string) (*analytics.MonthReport, error)
	Trends(ctx context.Context, clerkID string) (*analytics.TrendReport, error)
	Calendar(ctx context.Context, clerkID string, year, month int) (*analytics.CalendarReport, error)
}

type StatsHandler struct {
	stats StatsProvider
}

func NewStatsHandler(stats StatsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// serve runs one report for the authenticated user. Reports read up to a
// year of history, so they get a longer deadline than plain CRUD.
func serve[T any](w http.ResponseWriter, r *http.Request, build func(ctx context.Context, clerkID string) (T, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	report, err := build(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// GET /api/v1/dashboard
func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h.stats.Dashboard)
}

// GET /api/v1/stats/streak
func (h *StatsHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h.stats.Streak)
}

// GET /api/v1/stats/week?monday=YYYY-MM-DD
func (h *StatsHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	monday := r.URL.Query().Get("monday")
	serve(w, r, func(ctx context.Context, clerkID string) (*analytics.WeekReport, error) {
		return h.stats.Week(ctx, clerkID, monday)
	})
}

// GET /api/v1/stats/month?start=YYYY-MM-DD
func (h *StatsHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	serve(w, r, func(ctx context.Context, clerkID string) (*analytics.MonthReport, error) {
		return h.stats.Month(ctx, clerkID, start)
	})
}

// GET /api/v1/stats/trends
func (h *StatsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h.stats.Trends)
}

// GET /api/v1/calendar?year=2024&month=3
func (h *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := optionalInt(r, "year")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := optionalInt(r, "month")
	if err != nil || month < 0 || month > 12 {
		respondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}
	serve(w, r, func(ctx context.Context, clerkID string) (*analytics.CalendarReport, error) {
		return h.stats.Calendar(ctx, clerkID, year, month)
	})
}

func optionalInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
