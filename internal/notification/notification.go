package notification

import (
	"context"
	"time"

	"habitTrackerAPI/internal/logger"
)

type DeviceToken struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Token    string    `json:"token"`
	Platform string    `json:"platform"`
	AddedAt  time.Time `json:"addedAt"`
	LastUsed time.Time `json:"lastUsed"`
}

// PushProvider delivers a message to a set of device tokens.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []DeviceToken, title, body string, data map[string]any) error
}

// LogProvider stands in for FCM when no credentials are configured.
type LogProvider struct{}

func (LogProvider) SendPush(ctx context.Context, tokens []DeviceToken, title, body string, data map[string]any) error {
	logger.Info("push (log only)", "devices", len(tokens), "title", title, "body", body)
	return nil
}
