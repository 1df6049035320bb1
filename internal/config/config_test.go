package config

import (
	"testing"
	"time"

	"github.com/grassroots-fc/matchday/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "matchday-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.HalfLengthMinutes != 20 {
		t.Fatalf("unexpected HalfLengthMinutes: %d", cfg.HalfLengthMinutes)
	}
	if cfg.SaveTimeout != 10*time.Second {
		t.Fatalf("unexpected SaveTimeout: %s", cfg.SaveTimeout)
	}
	if cfg.SaveWorkers != 4 {
		t.Fatalf("unexpected SaveWorkers: %d", cfg.SaveWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_ResultWebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RESULT_WEBHOOK_ENABLED", "true")
	t.Setenv("RESULT_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RESULT_WEBHOOK_ENABLED=true without RESULT_WEBHOOK_URL")
	}
}

func TestLoad_MatchSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("MATCH_HALF_LENGTH_MINUTES", "35")
	t.Setenv("MATCH_HALFTIME_HANDOFF_DELAY", "5s")
	t.Setenv("MATCH_SAVE_WORKERS", "8")
	t.Setenv("ROSTER_STORE_DIR", "/var/lib/matchday/rosters")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HalfLengthMinutes != 35 {
		t.Fatalf("unexpected HalfLengthMinutes: %d", cfg.HalfLengthMinutes)
	}
	if cfg.HalftimeHandoffDelay != 5*time.Second {
		t.Fatalf("unexpected HalftimeHandoffDelay: %s", cfg.HalftimeHandoffDelay)
	}
	if cfg.SaveWorkers != 8 {
		t.Fatalf("unexpected SaveWorkers: %d", cfg.SaveWorkers)
	}
	if cfg.RosterStoreDir != "/var/lib/matchday/rosters" {
		t.Fatalf("unexpected RosterStoreDir: %q", cfg.RosterStoreDir)
	}
}

func TestLoad_InvalidHalfLength(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MATCH_HALF_LENGTH_MINUTES", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for MATCH_HALF_LENGTH_MINUTES=0")
	}
}
