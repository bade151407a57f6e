package config

import (
	"errors"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "collablearn")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing-env error, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Engine.ScoreWorkers != 8 {
		t.Fatalf("expected default 8 workers, got %d", cfg.Engine.ScoreWorkers)
	}
	if cfg.Engine.DefaultLimit != 20 || cfg.Engine.MaxLimit != 50 {
		t.Fatalf("unexpected limit defaults: %+v", cfg.Engine)
	}
	if cfg.Engine.CacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache TTL, got %s", cfg.Engine.CacheTTL)
	}
	if !cfg.Database.RunMigrations {
		t.Fatalf("migrations should default to on")
	}
	if cfg.Database.RunSeeders {
		t.Fatalf("seeders should default to off")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENGINE_SCORE_WORKERS", "16")
	t.Setenv("ENGINE_CACHE_TTL", "90")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "30m")
	t.Setenv("CATALOG_PAGES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Engine.ScoreWorkers != 16 {
		t.Fatalf("worker override ignored")
	}
	if cfg.Engine.CacheTTL != 90*time.Second {
		t.Fatalf("bare-seconds TTL not parsed, got %s", cfg.Engine.CacheTTL)
	}
	if cfg.JWT.AccessExpiresIn != 30*time.Minute {
		t.Fatalf("duration override ignored")
	}
	if cfg.Importer.Pages != 5 {
		t.Fatalf("importer override ignored")
	}
}
