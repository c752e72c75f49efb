package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer       string        // Issuer claim for access tokens (default: billpoint-auth)
	AccessTTL    time.Duration // Access token lifetime (default: jwtx.DefaultAccessTokenTTL)
	DatabaseFile string        // Path to SQLite database file (default: ./billpoint.db)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Revocation cleanup interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("BILLPOINT_ISSUER", "billpoint-auth"),
		AccessTTL:            getEnvDurationOrDefault("BILLPOINT_ACCESS_TTL", 0), // 0 = service default
		DatabaseFile:         getEnvOrDefault("BILLPOINT_DATABASE_FILE", "billpoint.db"),
		Env:                  getEnvOrDefault("BILLPOINT_ENV", "dev"),
		LogLevel:             getEnvOrDefault("BILLPOINT_LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("BILLPOINT_LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("BILLPOINT_PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("BILLPOINT_SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("BILLPOINT_HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
