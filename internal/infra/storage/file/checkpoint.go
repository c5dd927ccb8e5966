// Package file implements the checkpoint repository as a small JSON file,
// compatible with the progress.json artifact earlier runs produced.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vietddude/enricher/internal/core/domain"
	"github.com/vietddude/enricher/internal/infra/storage"
)

// CheckpointRepo persists the checkpoint as JSON on disk.
type CheckpointRepo struct {
	path string
}

// NewCheckpointRepo creates a file-backed checkpoint repository.
func NewCheckpointRepo(path string) *CheckpointRepo {
	return &CheckpointRepo{path: path}
}

// Get reads the stored checkpoint. A missing file means no checkpoint.
func (r *CheckpointRepo) Get(ctx context.Context) (*domain.Checkpoint, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, storage.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint: %w", err)
	}
	return &cp, nil
}

// Save writes the checkpoint atomically: a temp file in the same
// directory is renamed over the target, so a crash mid-write never
// leaves a torn checkpoint behind.
func (r *CheckpointRepo) Save(ctx context.Context, cp *domain.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}
