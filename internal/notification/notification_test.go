package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterDeviceRequest_Valid(t *testing.T) {
	assert.True(t, (&RegisterDeviceRequest{Token: "abc", Platform: "android"}).Valid())
	assert.True(t, (&RegisterDeviceRequest{Token: "abc", Platform: "web"}).Valid())
	assert.False(t, (&RegisterDeviceRequest{Token: " ", Platform: "ios"}).Valid())
	assert.False(t, (&RegisterDeviceRequest{Token: "abc", Platform: "palm"}).Valid())
}

func TestReminderMessage(t *testing.T) {
	title, body := ReminderMessage("es", "Leer")
	assert.Equal(t, "Recordatorio", title)
	assert.Equal(t, "Es hora de: Leer", body)

	title, body = ReminderMessage("en", "Read")
	assert.Equal(t, "Reminder", title)
	assert.Equal(t, "Time for: Read", body)
}
