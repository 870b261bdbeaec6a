package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		}
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "REMINDER_INTERVAL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "LOG_LEVEL", "LOG_FORMAT", "FCM_CREDENTIALS_FILE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, int32(5), cfg.DBMinConns)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, "./serviceAccountKey.json", cfg.FCMCredentialsFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReminderInterval)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("REMINDER_INTERVAL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REMINDER_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "many")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBMaxConns: 25, DBMinConns: 5}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "CLERK_SECRET_KEY")

	cfg.DatabaseURL = "postgres://localhost/habits"
	cfg.ClerkSecretKey = "sk_test"
	assert.NoError(t, cfg.Validate())

	cfg.DBMinConns = 30
	assert.Error(t, cfg.Validate())
}
