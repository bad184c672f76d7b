package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"ADDR", "WEB_DIR", "STORE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "SESSION_TTL", "OIDC_ISSUER", "OWNER_EMAIL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %s, want :8080", cfg.Addr)
	}
	if cfg.WebDir != "web" {
		t.Errorf("WebDir = %s, want web", cfg.WebDir)
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("StoreDriver = %s, want sqlite", cfg.StoreDriver)
	}
	if cfg.SQLitePath != "healthlog.db" {
		t.Errorf("SQLitePath = %s, want healthlog.db", cfg.SQLitePath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.SSOEnabled() {
		t.Error("SSO should be disabled by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ADDR", ":9000")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/healthlog")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("OIDC_ISSUER", "")
	t.Setenv("OWNER_EMAIL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.StoreDriver != DriverPostgres || cfg.SessionTTL != 2*time.Hour {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("OIDC_ISSUER", "")
	t.Setenv("OWNER_EMAIL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
}

func TestLoad_AppliesOverridesBeforeValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OIDC_ISSUER", "")
	t.Setenv("OWNER_EMAIL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected postgres without DATABASE_URL to fail")
	}

	cfg, err := Load(func(c *Config) { c.StoreDriver = DriverMemory })
	if err != nil {
		t.Fatalf("Load() with override failed: %v", err)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Errorf("StoreDriver = %s, want memory", cfg.StoreDriver)
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: DriverMemory, SessionTTL: time.Hour}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.StoreDriver = "redis" }, true},
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }, true},
		{"sqlite without path", func(c *Config) { c.StoreDriver = DriverSQLite }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"oidc without client", func(c *Config) { c.OIDCIssuer = "https://id.example.com"; c.OwnerEmail = "me@example.com" }, true},
		{"oidc without owner", func(c *Config) {
			c.OIDCIssuer = "https://id.example.com"
			c.OIDCClientID = "healthlog"
			c.OIDCRedirectURL = "https://health.example.com/api/auth/sso/callback"
		}, true},
		{"owner email without sso", func(c *Config) { c.OwnerEmail = "me@example.com" }, true},
		{"owner email with sso", func(c *Config) {
			c.OIDCIssuer = "https://id.example.com"
			c.OIDCClientID = "healthlog"
			c.OIDCRedirectURL = "https://health.example.com/api/auth/sso/callback"
			c.OwnerEmail = "me@example.com"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
