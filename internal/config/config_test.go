package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DB_HOST", "DB_NAME", "REDIS_URL", "TOKEN_TTL_HOURS", "LOCK_TTL_SECONDS", "LOG_DEV"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DatabaseURL, "host=localhost")
	assert.Contains(t, cfg.DatabaseURL, "dbname=wordcap")
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.DevLogging)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("TOKEN_TTL_HOURS", "1")
	t.Setenv("LOCK_TTL_SECONDS", "not-a-number")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.True(t, cfg.DevLogging)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
}

func TestWarnDefaultSecrets(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		warned  bool
		message string
	}{
		{"defaults in production", Config{JWTSecret: devJWTSecret, SessionSecret: devSessionSecret}, true, "SESSION_SECRET"},
		{"jwt default only", Config{JWTSecret: devJWTSecret, SessionSecret: "real"}, true, "JWT_SECRET"},
		{"defaults in dev", Config{JWTSecret: devJWTSecret, SessionSecret: devSessionSecret, DevLogging: true}, false, ""},
		{"configured", Config{JWTSecret: "a", SessionSecret: "b"}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			assert.Equal(t, tt.warned, tt.cfg.WarnDefaultSecrets(logger))
			if tt.warned {
				assert.Contains(t, buf.String(), "level=WARN")
				assert.Contains(t, buf.String(), tt.message)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLoadFallsBackToDevSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
}
