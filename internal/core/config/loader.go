package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.Sheet == "" {
		cfg.Catalog.Sheet = "Sheet1"
	}
	if cfg.Pipeline.CheckpointPath == "" {
		cfg.Pipeline.CheckpointPath = "progress.json"
	}
	if cfg.Pipeline.FlushEvery == 0 {
		cfg.Pipeline.FlushEvery = 5
	}
	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = 5
	}
	if cfg.Lookup.PubChemURL == "" {
		cfg.Lookup.PubChemURL = "https://pubchem.ncbi.nlm.nih.gov"
	}
	if cfg.Lookup.VendorURL == "" {
		cfg.Lookup.VendorURL = "https://www.ambeed.com"
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 10 * time.Second
	}
	if cfg.Lookup.Retry.MaxAttempts == 0 {
		cfg.Lookup.Retry.MaxAttempts = 3
	}
	if cfg.Lookup.Retry.InitialDelay == 0 {
		cfg.Lookup.Retry.InitialDelay = 2 * time.Second
	}
	if cfg.Lookup.Retry.MaxDelay == 0 {
		cfg.Lookup.Retry.MaxDelay = 60 * time.Second
	}
	if cfg.Lookup.Retry.BackoffMultiple == 0 {
		cfg.Lookup.Retry.BackoffMultiple = 2.0
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}
}
