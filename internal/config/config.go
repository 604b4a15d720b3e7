// Package config manages application configuration
package config

import (
	"os"
	"time"
)

// SessionStoreKind selects the durable key-value backend for admin sessions
type SessionStoreKind string

const (
	SessionStoreSQLite SessionStoreKind = "sqlite"
	SessionStoreRedis  SessionStoreKind = "redis"
	SessionStoreMemory SessionStoreKind = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"

	// Database
	DatabaseURL string

	// Security
	SecretKey string // For JWT signing

	// Session settings
	SessionDuration time.Duration
	SessionStore    SessionStoreKind
	RedisURL        string

	// Demo admin credential (stand-in for a real identity provider)
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:            getEnv("QUIBOT_PORT", "8080"),
		Environment:     getEnv("QUIBOT_ENV", "development"),
		DatabaseURL:     getEnv("QUIBOT_DATABASE_URL", "quibotanicals.db"),
		SecretKey:       getEnv("QUIBOT_SECRET_KEY", "dev-secret-key-change-in-production"),
		SessionDuration: getDurationEnv("QUIBOT_SESSION_DURATION", 24*time.Hour),
		SessionStore:    SessionStoreKind(getEnv("QUIBOT_SESSION_STORE", string(SessionStoreSQLite))),
		RedisURL:        getEnv("QUIBOT_REDIS_URL", "redis://localhost:6379/0"),
		AdminEmail:      getEnv("QUIBOT_ADMIN_EMAIL", "admin@quibotanicals.com"),
		AdminPassword:   getEnv("QUIBOT_ADMIN_PASSWORD", "admin123"),
		AdminName:       getEnv("QUIBOT_ADMIN_NAME", "QuiBotanicals Admin"),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
