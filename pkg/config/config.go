package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the setup tools.
// Both tools read the same .env file; each validates only the variables it
// needs, before any network call is made.
type Config struct {
	Env      string // "dev" or "prod" (controls log encoding only)
	LogLevel string // "debug", "info", etc.

	AWSRegion string // for the optional Secrets Manager credential source
	CacheTTL  time.Duration

	// Plaid link-flow server
	PlaidClientID   string
	PlaidSecret     string
	PlaidEnv        string // sandbox | development | production
	PlaidSecretName string // optional AWS Secrets Manager secret holding client_id/secret
	LinkPort        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	// Schwab OAuth bootstrap
	SchwabClientID     string
	SchwabClientSecret string
	SchwabTokenFile    string
	SchwabRedirectURI  string
	SchwabSecretName   string // optional AWS Secrets Manager secret holding client_id/client_secret
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	return &Config{
		Env:      GetEnv("ENV", "dev"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		AWSRegion: GetEnv("AWS_REGION", "us-east-2"),
		CacheTTL:  GetEnvDuration("CACHE_TTL", 1*time.Hour),

		PlaidClientID:   GetEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:     GetEnv("PLAID_SECRET", ""),
		PlaidEnv:        GetEnv("PLAID_ENV", "production"),
		PlaidSecretName: GetEnv("PLAID_SECRET_NAME", ""),
		LinkPort:        GetEnvInt("PLAID_LINK_PORT", 5000),

		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:    GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),

		SchwabClientID:     GetEnv("SCHWAB_CLIENT_ID", ""),
		SchwabClientSecret: GetEnv("SCHWAB_CLIENT_SECRET", ""),
		SchwabTokenFile:    GetEnv("SCHWAB_TOKEN_FILE", ""),
		SchwabRedirectURI:  GetEnv("SCHWAB_REDIRECT_URI", "https://127.0.0.1"),
		SchwabSecretName:   GetEnv("SCHWAB_SECRET_NAME", ""),
	}
}

// ValidatePlaid checks the variables the link-flow server requires.
// Called after any Secrets Manager resolution has had a chance to fill them.
func (c *Config) ValidatePlaid() error {
	if c.PlaidClientID == "" {
		return fmt.Errorf("PLAID_CLIENT_ID not set in .env")
	}
	if c.PlaidSecret == "" {
		return fmt.Errorf("PLAID_SECRET not set in .env")
	}
	return nil
}

// ValidateSchwab checks the variables the OAuth bootstrap requires.
func (c *Config) ValidateSchwab() error {
	if c.SchwabClientID == "" {
		return fmt.Errorf("SCHWAB_CLIENT_ID not set in .env")
	}
	if c.SchwabClientSecret == "" {
		return fmt.Errorf("SCHWAB_CLIENT_SECRET not set in .env")
	}
	if c.SchwabTokenFile == "" {
		return fmt.Errorf("SCHWAB_TOKEN_FILE not set in .env")
	}
	return nil
}
