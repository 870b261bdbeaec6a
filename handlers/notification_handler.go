package handlers

import (
	"context"
	"net/http"
	"time"

	"habitTrackerAPI/internal/notification"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// POST /api/v1/devices - Register a push token for the caller
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req notification.RegisterDeviceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Valid() {
		respondWithError(w, http.StatusBadRequest, "token and platform (ios, android, web) are required")
		return
	}

	device, err := h.notificationService.RegisterDevice(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}
	respondWithJSON(w, http.StatusOK, device)
}
