// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Development fallbacks. Anything deployed must override them.
const (
	devJWTSecret     = "wordcap-dev-secret"
	devSessionSecret = "wordcap-dev-session"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	SessionSecret string
	TokenTTL      time.Duration
	// RedisURL enables the per-thread write lock when set.
	RedisURL   string
	LockTTL    time.Duration
	CORSOrigin string
	DevLogging bool
}

// Load reads .env if present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   databaseURL(),
		JWTSecret:     getenv("JWT_SECRET", devJWTSecret),
		SessionSecret: getenv("SESSION_SECRET", devSessionSecret),
		TokenTTL:      time.Duration(getenvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		RedisURL:      getenv("REDIS_URL", ""),
		LockTTL:       time.Duration(getenvInt("LOCK_TTL_SECONDS", 5)) * time.Second,
		CORSOrigin:    getenv("CORS_ORIGIN", "*"),
		DevLogging:    getenvBool("LOG_DEV", false),
	}
}

// WarnDefaultSecrets logs each secret still set to its development value
// when not running in dev mode. It reports whether anything was logged.
func (c Config) WarnDefaultSecrets(logger *slog.Logger) bool {
	if c.DevLogging {
		return false
	}
	warned := false
	if c.JWTSecret == devJWTSecret {
		logger.Warn("using development default secret", "key", "JWT_SECRET")
		warned = true
	}
	if c.SessionSecret == devSessionSecret {
		logger.Warn("using development default secret", "key", "SESSION_SECRET")
		warned = true
	}
	return warned
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// discrete DB_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "wordcap"),
		getenv("DB_SSLMODE", "disable"),
	)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
