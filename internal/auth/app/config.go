package app

import (
	"os"
	"strconv"
	"time"

	"github.com/hexfray/authd/pkg/jwtx"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret string        // Required: process-wide HS256 signing secret
	TokenTTL  time.Duration // Optional: access token lifetime (default: 60m)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./authd.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		JWTSecret:           os.Getenv("AUTHD_JWT_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("AUTHD_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		DatabaseFile:        getEnvOrDefault("AUTHD_DATABASE_FILE", "authd.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate enforces the startup preconditions. The signing secret is the
// only hard requirement; it is checked once here, never mid-request.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return jwtx.ErrMissingSecret
	}
	return nil
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

	// Accept bare integers as minutes for compatibility with older deploys.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
