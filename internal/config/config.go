// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the server and CLI.
type Config struct {
	Addr   string
	WebDir string

	// Storage
	StoreDriver string
	SQLitePath  string
	DatabaseURL string

	// Auth
	OwnerPasswordHash string
	OwnerEmail        string
	SessionTTL        time.Duration
	OIDCIssuer        string
	OIDCClientID      string
	OIDCClientSecret  string
	OIDCRedirectURL   string

	LogLevel string
}

// Load reads configuration from environment variables, applies overrides in
// order and validates the result.
func Load(overrides ...func(*Config)) (*Config, error) {
	cfg := FromEnv()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads configuration without validating it. A .env file in the
// working directory is applied if present; real environment variables win
// over it.
func FromEnv() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:              getEnv("ADDR", ":8080"),
		WebDir:            getEnv("WEB_DIR", "web"),
		StoreDriver:       getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:        getEnv("SQLITE_PATH", "healthlog.db"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		OwnerPasswordHash: os.Getenv("OWNER_PASSWORD_HASH"),
		OwnerEmail:        os.Getenv("OWNER_EMAIL"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		OIDCIssuer:        os.Getenv("OIDC_ISSUER"),
		OIDCClientID:      os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret:  os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:   os.Getenv("OIDC_REDIRECT_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks that the settings are consistent.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be sqlite, postgres or memory, got %q", c.StoreDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	if c.OIDCIssuer != "" {
		if c.OIDCClientID == "" || c.OIDCRedirectURL == "" {
			return fmt.Errorf("OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required when OIDC_ISSUER is set")
		}
		if c.OwnerEmail == "" {
			return fmt.Errorf("OWNER_EMAIL is required when OIDC_ISSUER is set")
		}
	} else if c.OwnerEmail != "" {
		// The email owner can only sign in through SSO.
		return fmt.Errorf("OIDC_ISSUER is required when OWNER_EMAIL is set")
	}
	return nil
}

// SSOEnabled reports whether an OIDC issuer is configured.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuer != ""
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
