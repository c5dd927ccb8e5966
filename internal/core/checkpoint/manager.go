// Package checkpoint tracks the enrichment pipeline's resume position.
//
// The checkpoint acts as a "bookmark" that remembers how far a run got:
// a single integer, the next unprocessed catalogue position expressed as
// a completion count. It is read once at startup to determine the resume
// point and overwritten after every flush.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vietddude/enricher/internal/core/domain"
	"github.com/vietddude/enricher/internal/infra/storage"
)

// Manager handles checkpoint operations over a repository.
type Manager struct {
	repo storage.CheckpointRepository
	log  *slog.Logger
}

// NewManager creates a new checkpoint manager with the given repository.
func NewManager(repo storage.CheckpointRepository) *Manager {
	return &Manager{
		repo: repo,
		log:  slog.Default().With("component", "checkpoint"),
	}
}

// Resume determines the position to resume from. An explicit override
// takes precedence; otherwise the stored checkpoint; otherwise 0.
func (m *Manager) Resume(ctx context.Context, override *int) (int, error) {
	if override != nil {
		m.log.Info("Using start override", "position", *override)
		return *override, nil
	}

	cp, err := m.repo.Get(ctx)
	if errors.Is(err, storage.ErrCheckpointNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	m.log.Info("Resuming from checkpoint", "position", cp.LastRow)
	return cp.LastRow, nil
}

// Save overwrites the checkpoint with the given position.
func (m *Manager) Save(ctx context.Context, position int) error {
	if err := m.repo.Save(ctx, &domain.Checkpoint{LastRow: position}); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}
