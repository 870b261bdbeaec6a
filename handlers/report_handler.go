package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"habitTrackerAPI/internal/feedback"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// POST /api/v1/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req feedback.CreateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.reportService.CreateReport(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusCreated, report)
}

// GET /api/v1/reports?limit=20
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reports, err := h.reportService.ListReports(ctx, clerkID, limit)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, reports)
}

// GET /api/v1/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	report, err := h.reportService.GetReport(ctx, clerkID, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// PATCH /api/v1/reports/{id}
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req feedback.UpdateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.reportService.UpdateReport(ctx, clerkID, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// DELETE /api/v1/reports/{id}
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.reportService.DeleteReport(ctx, clerkID, mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
