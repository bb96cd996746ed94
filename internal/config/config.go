// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	AuthURL          string
	AuthClientID     string
	AuthClientSecret string
	BaseURL          string
	ListenAddr       string
	DBPath           string
	SecretKey        []byte
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	SecureCookies    bool
}

// CallbackURL returns the absolute redirect URI registered with the auth
// service, derived from BaseURL.
func (c *Config) CallbackURL() string {
	return c.BaseURL + "/auth/callback"
}

// envConfig holds raw env values before validation.
type envConfig struct {
	AuthURL          string        `env:"ADA_AUTH_URL,required"`
	AuthClientID     string        `env:"ADA_AUTH_CLIENT_ID,required"`
	AuthClientSecret string        `env:"ADA_AUTH_CLIENT_SECRET"`
	BaseURL          string        `env:"ADA_BASE_URL"        envDefault:"http://127.0.0.1:8080"`
	ListenAddr       string        `env:"ADA_LISTEN_ADDR"     envDefault:"127.0.0.1:8080"`
	DBPath           string        `env:"ADA_DB_PATH"         envDefault:"parent-dashboard.db"`
	SecretKey        string        `env:"ADA_SECRET_KEY,required"`
	SessionTTL       time.Duration `env:"ADA_SESSION_TTL"     envDefault:"720h"`
	SweepInterval    time.Duration `env:"ADA_SWEEP_INTERVAL"  envDefault:"1h"`
	SecureCookies    bool          `env:"ADA_SECURE_COOKIES"  envDefault:"false"`
}

// Load reads configuration from environment variables and returns a validated
// Config. Required: ADA_AUTH_URL and ADA_AUTH_CLIENT_ID (the hosted auth
// service), and ADA_SECRET_KEY (64 hex chars, the 32-byte AES key encrypting
// stored session tokens). Everything else has a default; see envConfig.
func Load() (*Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	key, err := hex.DecodeString(raw.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("ADA_SECRET_KEY is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("ADA_SECRET_KEY must decode to 32 bytes, got %d", len(key))
	}

	if raw.SessionTTL <= 0 {
		return nil, fmt.Errorf("ADA_SESSION_TTL must be positive, got %s", raw.SessionTTL)
	}
	if raw.SweepInterval <= 0 {
		return nil, fmt.Errorf("ADA_SWEEP_INTERVAL must be positive, got %s", raw.SweepInterval)
	}

	return &Config{
		AuthURL:          strings.TrimRight(raw.AuthURL, "/"),
		AuthClientID:     raw.AuthClientID,
		AuthClientSecret: raw.AuthClientSecret,
		BaseURL:          strings.TrimRight(raw.BaseURL, "/"),
		ListenAddr:       raw.ListenAddr,
		DBPath:           raw.DBPath,
		SecretKey:        key,
		SessionTTL:       raw.SessionTTL,
		SweepInterval:    raw.SweepInterval,
		SecureCookies:    raw.SecureCookies,
	}, nil
}
