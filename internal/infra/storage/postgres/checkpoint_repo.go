package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vietddude/enricher/internal/core/domain"
	"github.com/vietddude/enricher/internal/infra/storage"
)

// CheckpointRepo implements storage.CheckpointRepository using PostgreSQL.
// The checkpoint is a single row keyed by a fixed id.
type CheckpointRepo struct {
	db *DB
}

// NewCheckpointRepo creates a new PostgreSQL checkpoint repository.
func NewCheckpointRepo(db *DB) *CheckpointRepo {
	return &CheckpointRepo{db: db}
}

// Get retrieves the stored checkpoint.
func (r *CheckpointRepo) Get(ctx context.Context) (*domain.Checkpoint, error) {
	var lastRow int
	err := r.db.GetContext(ctx, &lastRow,
		`SELECT last_row FROM checkpoints WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return &domain.Checkpoint{LastRow: lastRow}, nil
}

// Save upserts the checkpoint row.
func (r *CheckpointRepo) Save(ctx context.Context, cp *domain.Checkpoint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO checkpoints (id, last_row, updated_at)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET last_row = EXCLUDED.last_row, updated_at = EXCLUDED.updated_at`,
		cp.LastRow, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}
