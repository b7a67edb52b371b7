package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	bidroundtypes "github.com/solawi-club/bidround/app/modules/bidderround/domain/types"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres    PostgresConfig    `yaml:"postgres"`
	NATS        NATSConfig        `yaml:"nats"`
	HTTP        HTTPConfig        `yaml:"http"`
	BidderRound BidderRoundConfig `yaml:"bidder_round"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the HTTP listener configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// BidderRoundConfig holds the domain constants of the resolution core.
type BidderRoundConfig struct {
	// AnnualizationFactor converts monthly offer amounts to the annualized
	// unit of target amounts. Zero falls back to the domain default.
	AnnualizationFactor int64 `yaml:"annualization_factor"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ANNUALIZATION_FACTOR"); v != "" {
		factor, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ANNUALIZATION_FACTOR value: %v", err)
		}
		cfg.BidderRound.AnnualizationFactor = factor
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	// Optional; empty disables event publishing.
	cfg.NATS.URL = os.Getenv("NATS_URL")
	cfg.HTTP.Address = os.Getenv("HTTP_ADDRESS")

	if v := os.Getenv("ANNUALIZATION_FACTOR"); v != "" {
		factor, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ANNUALIZATION_FACTOR value: %v", err)
		}
		cfg.BidderRound.AnnualizationFactor = factor
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.BidderRound.AnnualizationFactor == 0 {
		cfg.BidderRound.AnnualizationFactor = bidroundtypes.DefaultAnnualizationFactor
	}
}
