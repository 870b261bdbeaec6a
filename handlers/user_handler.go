package handlers

import (
	"context"
	"net/http"
	"time"

	"habitTrackerAPI/internal/user"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func toProfile(u *user.User) user.ProfileResponse {
	return user.ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Timezone:  u.Timezone,
		Locale:    u.Locale,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}

	respondWithJSON(w, http.StatusOK, toProfile(u))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req user.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// email is owned by the identity provider
	req.Email = nil

	u, err := h.userService.UpdateProfileByClerkID(ctx, clerkID, &req)
	if err != nil {
		respondWithServiceError(w, err, clerkID)
		return
	}

	respondWithJSON(w, http.StatusOK, toProfile(u))
}
