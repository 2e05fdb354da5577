package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:                 "8080",
		Env:                  "development",
		DatabaseURL:          "postgres://localhost/aura",
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		JWTExpirationSeconds: 86400,
		SuspensionSweep:      time.Minute,
		SeedAdminPassword:    "admin123",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT_SECRET")
	}

	cfg.JWTSecret = "tooshort"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for short JWT_SECRET")
	}
}

func TestValidateRequiresPositiveExpiration(t *testing.T) {
	cfg := validConfig()
	cfg.JWTExpirationSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero expiration")
	}
}

func TestValidateProductionHardening(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.CookieSecure = false
	cfg.SeedAdminPassword = "strong-password"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for insecure cookies in production")
	}

	cfg.CookieSecure = true
	cfg.SeedAdminPassword = "admin123"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for default admin password in production")
	}

	cfg.SeedAdminPassword = "strong-password"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadDefaultSweepInterval(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/aura")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SuspensionSweep != 24*time.Hour {
		t.Errorf("SuspensionSweep = %s, want 24h", cfg.SuspensionSweep)
	}
}

func TestJWTExpiration(t *testing.T) {
	cfg := validConfig()
	if got := cfg.JWTExpiration(); got != 24*time.Hour {
		t.Errorf("JWTExpiration = %s, want 24h", got)
	}
}
