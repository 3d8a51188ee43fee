package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig holds the runtime settings for the CV toolkit API. All
// values come from the environment with sensible local defaults; a
// .env file is loaded by main before this is read.
type AppConfig struct {
	Port           string
	Environment    string
	MaxUploadBytes int64
	RateLimit      int
	RateWindow     time.Duration
	CacheTTL       time.Duration
}

// GetAppConfig reads the configuration from the environment.
func GetAppConfig() AppConfig {
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "5242880"), 10, 64)
	rate, _ := strconv.Atoi(getEnv("RATE_LIMIT", "60"))
	windowSec, _ := strconv.Atoi(getEnv("RATE_WINDOW_SECONDS", "60"))
	cacheSec, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))

	return AppConfig{
		Port:           getEnv("PORT", "8081"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		MaxUploadBytes: maxUpload,
		RateLimit:      rate,
		RateWindow:     time.Duration(windowSec) * time.Second,
		CacheTTL:       time.Duration(cacheSec) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
