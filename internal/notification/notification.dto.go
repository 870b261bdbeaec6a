package notification

import "strings"

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

func (r *RegisterDeviceRequest) Valid() bool {
	if strings.TrimSpace(r.Token) == "" {
		return false
	}
	switch r.Platform {
	case "ios", "android", "web":
		return true
	}
	return false
}

// ReminderMessage returns the push title and body for a habit reminder in the
// owner's language.
func ReminderMessage(language, habitTitle string) (string, string) {
	if language == "es" {
		return "Recordatorio", "Es hora de: " + habitTitle
	}
	return "Reminder", "Time for: " + habitTitle
}
