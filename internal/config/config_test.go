package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const testYAML = `
app:
  port: 9090
  gin_mode: release
  env: development
  log_level: debug

database:
  dsn: "postgres://localhost/test"

redis:
  addr: "localhost:6379"
  db: 2

otp:
  ttl: "10m"
  completion_window: "30m"
  cleanup_age: "1h"

session:
  user_ttl: "720h"
  admin_ttl: "24h"
  max_per_user: 5

mail:
  resend_api_key: "key-123"
  from: "shop@example.com"
`

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/test", cfg.DSN)
	assert.Equal(t, 2, cfg.RedisDB)

	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 30*time.Minute, cfg.OTPCompletionWindow)
	assert.Equal(t, time.Hour, cfg.OTPCleanupAge)

	assert.Equal(t, 30*24*time.Hour, cfg.UserSessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.AdminSessionTTL)
	assert.Equal(t, 5, cfg.MaxSessions)

	assert.Equal(t, "key-123", cfg.ResendAPIKey)
	assert.Equal(t, "shop@example.com", cfg.MailFrom)
	assert.False(t, cfg.Production())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_DSN", "postgres://prod/db")
	t.Setenv("RESEND_API_KEY", "live-key")

	cfg, err := LoadFrom(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres://prod/db", cfg.DSN)
	assert.Equal(t, "live-key", cfg.ResendAPIKey)
	assert.True(t, cfg.Production())
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	bad := `
app:
  port: 8080
otp:
  ttl: "not-a-duration"
  completion_window: "30m"
  cleanup_age: "1h"
session:
  user_ttl: "720h"
  admin_ttl: "24h"
`
	_, err := LoadFrom(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "otp ttl")
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
