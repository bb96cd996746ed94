package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every ADA_ env var that Load() reads.
var allConfigKeys = []string{
	"ADA_AUTH_URL",
	"ADA_AUTH_CLIENT_ID",
	"ADA_AUTH_CLIENT_SECRET",
	"ADA_BASE_URL",
	"ADA_LISTEN_ADDR",
	"ADA_DB_PATH",
	"ADA_SECRET_KEY",
	"ADA_SESSION_TTL",
	"ADA_SWEEP_INTERVAL",
	"ADA_SECURE_COOKIES",
}

// isolateConfigEnv saves and unsets all ADA_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

// setRequiredEnv sets the three required vars with valid values.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADA_AUTH_URL", "https://auth.ada.example")
	t.Setenv("ADA_AUTH_CLIENT_ID", "ada-dashboard")
	// 64 hex chars = 32 bytes
	t.Setenv("ADA_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("ADA_AUTH_CLIENT_SECRET", "s3cret")
	t.Setenv("ADA_BASE_URL", "https://dashboard.ada.example")
	t.Setenv("ADA_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("ADA_DB_PATH", "/tmp/test.db")
	t.Setenv("ADA_SESSION_TTL", "24h")
	t.Setenv("ADA_SWEEP_INTERVAL", "10m")
	t.Setenv("ADA_SECURE_COOKIES", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://auth.ada.example", cfg.AuthURL)
	assert.Equal(t, "ada-dashboard", cfg.AuthClientID)
	assert.Equal(t, "s3cret", cfg.AuthClientSecret)
	assert.Equal(t, "https://dashboard.ada.example", cfg.BaseURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Len(t, cfg.SecretKey, 32)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.SecureCookies)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "", cfg.AuthClientSecret)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "parent-dashboard.db", cfg.DBPath)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.False(t, cfg.SecureCookies)
}

func TestLoad_MissingAuthURL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADA_AUTH_CLIENT_ID", "ada-dashboard")
	t.Setenv("ADA_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADA_AUTH_URL")
}

func TestLoad_MissingClientID(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADA_AUTH_URL", "https://auth.ada.example")
	t.Setenv("ADA_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADA_AUTH_CLIENT_ID")
}

func TestLoad_MissingSecretKey(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADA_AUTH_URL", "https://auth.ada.example")
	t.Setenv("ADA_AUTH_CLIENT_ID", "ada-dashboard")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADA_SECRET_KEY")
}

func TestLoad_SecretKey_TooShort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADA_AUTH_URL", "https://auth.ada.example")
	t.Setenv("ADA_AUTH_CLIENT_ID", "ada-dashboard")
	t.Setenv("ADA_SECRET_KEY", "deadbeef")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADA_SECRET_KEY")
}

func TestLoad_SecretKey_NotHex(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ADA_AUTH_URL", "https://auth.ada.example")
	t.Setenv("ADA_AUTH_CLIENT_ID", "ada-dashboard")
	// 64 chars but not valid hex
	t.Setenv("ADA_SECRET_KEY", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADA_SECRET_KEY")
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("ADA_SESSION_TTL", "not-a-duration")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SessionTTL")
}

func TestLoad_NegativeSweepInterval(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("ADA_SWEEP_INTERVAL", "-5m")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADA_SWEEP_INTERVAL")
}

func TestLoad_TrimsTrailingSlashes(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("ADA_AUTH_URL", "https://auth.ada.example/")
	t.Setenv("ADA_BASE_URL", "https://dashboard.ada.example/")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://auth.ada.example", cfg.AuthURL)
	assert.Equal(t, "https://dashboard.ada.example", cfg.BaseURL)
}

func TestCallbackURL(t *testing.T) {
	isolateConfigEnv(t)
	setRequiredEnv(t)
	t.Setenv("ADA_BASE_URL", "https://dashboard.ada.example")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://dashboard.ada.example/auth/callback", cfg.CallbackURL())
}
