// Package control wires the application together and manages its
// lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/enricher/internal/core/checkpoint"
	"github.com/vietddude/enricher/internal/core/config"
	"github.com/vietddude/enricher/internal/enrich/assemble"
	"github.com/vietddude/enricher/internal/enrich/health"
	"github.com/vietddude/enricher/internal/enrich/lookup"
	"github.com/vietddude/enricher/internal/enrich/pipeline"
	rediscache "github.com/vietddude/enricher/internal/infra/cache"
	"github.com/vietddude/enricher/internal/infra/catalog"
	"github.com/vietddude/enricher/internal/infra/storage"
	"github.com/vietddude/enricher/internal/infra/storage/file"
	"github.com/vietddude/enricher/internal/infra/storage/memory"
	"github.com/vietddude/enricher/internal/infra/storage/postgres"
)

// Config holds the application configuration.
type Config struct {
	Port          int
	Catalog       config.CatalogConfig
	Pipeline      config.PipelineConfig
	Lookup        config.LookupConfig
	Cache         rediscache.Config
	Database      postgres.Config
	StartOverride *int // CLI flag, beats the config file
}

// Enricher is the main application struct that manages the pipeline
// lifecycle.
type Enricher struct {
	cfg          Config
	pipeline     *pipeline.Pipeline
	healthServer *health.Server
	db           *postgres.DB
	cacheClient  *rediscache.Client
	log          *slog.Logger
}

// New creates an Enricher instance with all dependencies initialized.
func New(cfg Config) (*Enricher, error) {

	// 1. Initialize Storage
	var checkpointRepo storage.CheckpointRepository
	var recordRepo storage.RecordRepository
	var failedRepo storage.FailedLookupRepository
	var db *postgres.DB

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		checkpointRepo = postgres.NewCheckpointRepo(db)
		recordRepo = postgres.NewRecordRepo(db)
		failedRepo = postgres.NewFailedLookupRepo(db)

		slog.Info("Using PostgreSQL storage")
	} else {
		store := memory.NewMemoryStorage()
		checkpointRepo = file.NewCheckpointRepo(cfg.Pipeline.CheckpointPath)
		failedRepo = memory.NewFailedLookupRepo(store)

		slog.Info("Using file checkpoint storage", "path", cfg.Pipeline.CheckpointPath)
	}

	// 2. Initialize Lookup Adapters
	httpClient := lookup.NewHTTPClient(cfg.Lookup.Timeout)

	var source lookup.Source = lookup.NewPubChemClient(cfg.Lookup.PubChemURL, httpClient)
	var cacheClient *rediscache.Client
	if cfg.Cache.URL != "" {
		var err error
		cacheClient, err = rediscache.NewClient(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to init cache: %w", err)
		}
		source = rediscache.NewCachedSource(source, cacheClient)
		slog.Info("Lookup cache enabled")
	}

	vendor := lookup.NewVendorClient(cfg.Lookup.VendorURL, httpClient)

	// 3. Assembler + Pipeline
	asm := assemble.New(source, failedRepo, cfg.Lookup.Retry.Policy()).
		WithCategoryFallback(vendor)

	startOverride := cfg.StartOverride
	if startOverride == nil {
		startOverride = cfg.Pipeline.StartIndex
	}

	pipe := pipeline.New(
		pipeline.Config{
			InputPath:     cfg.Catalog.InputPath,
			OutputPath:    cfg.Catalog.OutputPath,
			StartOverride: startOverride,
			FlushEvery:    cfg.Pipeline.FlushEvery,
			Workers:       cfg.Pipeline.Workers,
		},
		catalog.NewXLSX(cfg.Catalog.Sheet),
		asm,
		checkpoint.NewManager(checkpointRepo),
		recordRepo,
	)

	// 4. Health Server
	monitor := health.NewMonitor(pipe, failedRepo)
	healthServer := health.NewServer(monitor, cfg.Port)

	return &Enricher{
		cfg:          cfg,
		pipeline:     pipe,
		healthServer: healthServer,
		db:           db,
		cacheClient:  cacheClient,
		log:          slog.Default().With("component", "control"),
	}, nil
}

// Run starts the health server and executes the enrichment run,
// blocking until it finishes or the context is cancelled.
func (e *Enricher) Run(ctx context.Context) error {
	go func() {
		if err := e.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("Health server failed", "error", err)
		}
	}()

	return e.pipeline.Run(ctx)
}

// Stop releases resources.
func (e *Enricher) Stop(ctx context.Context) error {
	if err := e.healthServer.Stop(ctx); err != nil {
		e.log.Warn("Health server shutdown failed", "error", err)
	}
	if e.cacheClient != nil {
		if err := e.cacheClient.Close(); err != nil {
			e.log.Warn("Cache close failed", "error", err)
		}
	}
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			return fmt.Errorf("failed to close db: %w", err)
		}
	}
	return nil
}
