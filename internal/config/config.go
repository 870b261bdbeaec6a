package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"habitTrackerAPI/internal/logger"
)

type Config struct {
	Port               string
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	ClerkSecretKey     string
	ClerkWebhookSecret string
	FCMCredentialsJSON string
	FCMCredentialsFile string
	MetricsUser        string
	MetricsPass        string
	PprofSecret        string
	LogLevel           string
	LogFile            string
	LogJSON            bool
	ReminderInterval   time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	interval, err := time.ParseDuration(getEnv("REMINDER_INTERVAL", "1m"))
	if err != nil || interval <= 0 {
		return nil, errors.New("REMINDER_INTERVAL must be a positive duration")
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("RATE_LIMIT_RPS must be a positive number")
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 30)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:               getEnv("PORT", "3333"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBMaxConns:         int32(maxConns),
		DBMinConns:         int32(minConns),
		ClerkSecretKey:     getEnv("CLERK_SECRET_KEY", ""),
		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
		FCMCredentialsJSON: getEnv("FCM_SERVICE_ACCOUNT_JSON", ""),
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", "./serviceAccountKey.json"),
		MetricsUser:        getEnv("METRICS_USER", ""),
		MetricsPass:        getEnv("METRICS_PASS", ""),
		PprofSecret:        getEnv("PPROF_SECRET", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
		LogJSON:            strings.EqualFold(getEnv("LOG_FORMAT", "text"), "json"),
		ReminderInterval:   interval,
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
	}, nil
}

// Validate reports the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.ClerkSecretKey == "" {
		missing = append(missing, "CLERK_SECRET_KEY")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	if c.DBMinConns > c.DBMaxConns {
		return errors.New("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	return v, nil
}
