package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"habitTrackerAPI/internal/habit"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

type HistoryHandler struct {
	historyService *services.HistoryService
}

func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameters 'start' and 'end' are required")
		return
	}

	events, err := h.historyService.ListHistory(ctx, clerkID, start, end)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, events)
}

func (h *HistoryHandler) UpsertHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.UpsertHistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.HabitID == "" || req.Date == "" {
		respondWithError(w, http.StatusBadRequest, "habitId and date are required")
		return
	}

	ev, err := h.historyService.UpsertHistory(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, ev)
}

func (h *HistoryHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.historyService.DeleteHistory(ctx, clerkID, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
