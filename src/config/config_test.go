package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.RateLimitMax != 100 {
		t.Fatalf("expected default rate limit max 100, got %d", cfg.RateLimitMax)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAINTENANCE_MODE", "true")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("expected PORT override to take effect, got %s", cfg.Port)
	}
	if !cfg.MaintenanceMode {
		t.Fatalf("expected MAINTENANCE_MODE override to take effect")
	}
}
