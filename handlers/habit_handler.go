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

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habits, err := h.habitService.ListHabits(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.CreateHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.habitService.CreateHabit(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	found, err := h.habitService.GetHabit(ctx, clerkID, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, found)
}

func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.UpdateHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.habitService.UpdateHabit(ctx, clerkID, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteHabit archives; history stays for past reports.
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.habitService.ArchiveHabit(ctx, clerkID, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
