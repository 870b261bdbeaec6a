package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"

	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/internal/user"
	"habitTrackerAPI/services"
)

const webhookMaxBody = 64 << 10

// UserSync is the part of the user service the identity webhook drives.
type UserSync interface {
	CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	DeleteUserByClerkID(ctx context.Context, clerkID string) error
}

type WebhookHandler struct {
	users UserSync
	wh    *svix.Webhook
}

// NewWebhookHandler takes the "whsec_" signing secret from the Clerk
// dashboard. An empty secret disables verification, which is only meant for
// local development.
func NewWebhookHandler(users UserSync, signingSecret string) (*WebhookHandler, error) {
	h := &WebhookHandler{users: users}
	if signingSecret == "" {
		logger.Warn("CLERK_WEBHOOK_SECRET not set, webhook signatures will not be verified")
		return h, nil
	}
	wh, err := svix.NewWebhook(signingSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	h.wh = wh
	return h, nil
}

func (h *WebhookHandler) HandleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookMaxBody))
	if err != nil {
		logger.Warn("error reading webhook body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Error reading body")
		return
	}

	if err := h.verify(r.Header, body); err != nil {
		logger.Warn("invalid webhook signature", "error", err)
		respondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event user.ClerkWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("error parsing webhook", "error", err)
		respondWithError(w, http.StatusBadRequest, "Error parsing webhook")
		return
	}

	logger.Info("received webhook event", "type", event.Type)

	ctx := r.Context()
	switch event.Type {
	case "user.created", "user.updated":
		err = h.handleUserUpsert(ctx, event.Data)
	case "user.deleted":
		err = h.handleUserDeleted(ctx, event.Data)
	default:
		logger.Debug("unhandled webhook event type", "type", event.Type)
	}
	if err != nil {
		logger.Error("error processing webhook", "type", event.Type, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error processing webhook")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *WebhookHandler) handleUserUpsert(ctx context.Context, data json.RawMessage) error {
	var userData user.ClerkUserData
	if err := json.Unmarshal(data, &userData); err != nil {
		return fmt.Errorf("failed to unmarshal user data: %w", err)
	}
	if userData.ID == "" {
		return errors.New("user payload without id")
	}

	u, err := h.users.CreateUser(ctx, userData.CreateRequest())
	if err != nil {
		return fmt.Errorf("failed to sync user: %w", err)
	}
	logger.Info("synced user", "clerk_id", u.ClerkID)
	return nil
}

func (h *WebhookHandler) handleUserDeleted(ctx context.Context, data json.RawMessage) error {
	var userData struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &userData); err != nil {
		return fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	err := h.users.DeleteUserByClerkID(ctx, userData.ID)
	if errors.Is(err, services.ErrNotFound) {
		logger.Debug("deleted user was never synced", "clerk_id", userData.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	logger.Info("deleted user", "clerk_id", userData.ID)
	return nil
}

// verify checks the svix headers Clerk signs deliveries with. svix accepts
// any of several rotated "v1," signatures and rejects timestamps outside its
// five minute tolerance.
func (h *WebhookHandler) verify(header http.Header, body []byte) error {
	if h.wh == nil {
		return nil
	}
	return h.wh.Verify(body, header)
}
