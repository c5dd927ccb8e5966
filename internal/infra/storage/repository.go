package storage

import (
	"context"
	"errors"

	"github.com/vietddude/enricher/internal/core/domain"
)

var (
	// ErrCheckpointNotFound is returned when no checkpoint has been saved yet
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)

// CheckpointRepository persists pipeline progress
type CheckpointRepository interface {
	// Get retrieves the stored checkpoint, ErrCheckpointNotFound if absent
	Get(ctx context.Context) (*domain.Checkpoint, error)

	// Save overwrites the checkpoint (atomic)
	Save(ctx context.Context, cp *domain.Checkpoint) error
}

// RecordRepository mirrors the assembled output rows
type RecordRepository interface {
	// ReplaceAll overwrites the stored rows with the given ordered set
	ReplaceAll(ctx context.Context, records []domain.Record) error

	// GetAll retrieves all rows in product-code order
	GetAll(ctx context.Context) ([]domain.Record, error)
}

// FailedLookupRepository tracks identifiers whose lookups exhausted retries
type FailedLookupRepository interface {
	// Add records one exhausted lookup
	Add(ctx context.Context, fl *domain.FailedLookup) error

	// List retrieves all failed lookups
	List(ctx context.Context) ([]*domain.FailedLookup, error)

	// Count returns the number of failed lookups
	Count(ctx context.Context) (int, error)
}
