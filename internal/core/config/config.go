package config

import (
	"time"

	"github.com/vietddude/enricher/internal/enrich/retry"
	rediscache "github.com/vietddude/enricher/internal/infra/cache"
	"github.com/vietddude/enricher/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig      `yaml:"server"`
	Catalog  CatalogConfig     `yaml:"catalog"`
	Pipeline PipelineConfig    `yaml:"pipeline"`
	Lookup   LookupConfig      `yaml:"lookup"`
	Cache    rediscache.Config `yaml:"cache"`
	Logging  LoggingConfig     `yaml:"logging"`
	Database postgres.Config   `yaml:"database"`
}

// ServerConfig holds HTTP server settings for health/metrics.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// CatalogConfig holds the input/output spreadsheet settings.
type CatalogConfig struct {
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
	Sheet      string `yaml:"sheet"`
}

// PipelineConfig holds run settings for the enrichment pipeline.
type PipelineConfig struct {
	CheckpointPath string `yaml:"checkpoint_path"`
	StartIndex     *int   `yaml:"start_index"` // nil = resume from checkpoint
	FlushEvery     int    `yaml:"flush_every"`
	Workers        int    `yaml:"workers"`
}

// LookupConfig holds settings for the external lookup adapters.
type LookupConfig struct {
	PubChemURL string        `yaml:"pubchem_url"`
	VendorURL  string        `yaml:"vendor_url"`
	Timeout    time.Duration `yaml:"timeout"`
	Retry      RetryConfig   `yaml:"retry"`
}

// RetryConfig holds the retry budget for external lookups.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts"`
	InitialDelay    time.Duration `yaml:"initial_delay"`
	MaxDelay        time.Duration `yaml:"max_delay"`
	BackoffMultiple float64       `yaml:"backoff_multiple"`
}

// Policy converts the YAML retry settings into a retry.Policy.
func (c RetryConfig) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     c.MaxAttempts,
		InitialDelay:    c.InitialDelay,
		MaxDelay:        c.MaxDelay,
		BackoffMultiple: c.BackoffMultiple,
	}
}
