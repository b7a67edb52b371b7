package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
postgres:
  dsn: postgres://file-dsn/bidround
nats:
  url: nats://file:4222
bidder_round:
  annualization_factor: 6
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DATABASE_URL", "postgres://env-dsn/bidround")
	t.Setenv("NATS_URL", "")
	t.Setenv("ANNUALIZATION_FACTOR", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Postgres.DSN != "postgres://env-dsn/bidround" {
		t.Errorf("env var must override file, got %q", cfg.Postgres.DSN)
	}
	if cfg.NATS.URL != "nats://file:4222" {
		t.Errorf("unexpected NATS URL: %q", cfg.NATS.URL)
	}
	if cfg.BidderRound.AnnualizationFactor != 6 {
		t.Errorf("expected factor 6, got %d", cfg.BidderRound.AnnualizationFactor)
	}
	if cfg.HTTP.Address != ":8080" {
		t.Errorf("expected default HTTP address, got %q", cfg.HTTP.Address)
	}
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-only/bidround")
	t.Setenv("NATS_URL", "")
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("ANNUALIZATION_FACTOR", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Postgres.DSN != "postgres://env-only/bidround" {
		t.Errorf("unexpected DSN: %q", cfg.Postgres.DSN)
	}
	if cfg.HTTP.Address != ":9999" {
		t.Errorf("unexpected HTTP address: %q", cfg.HTTP.Address)
	}
	if cfg.BidderRound.AnnualizationFactor != 12 {
		t.Errorf("expected default factor 12, got %d", cfg.BidderRound.AnnualizationFactor)
	}
}

func TestLoadConfig_MissingDSNFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}
