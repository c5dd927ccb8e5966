package memory

import (
	"context"
	"sync"

	"github.com/vietddude/enricher/internal/core/domain"
	"github.com/vietddude/enricher/internal/infra/storage"
)

// MemoryStorage holds all in-memory state behind one lock. Used for
// tests and for runs without a database configured.
type MemoryStorage struct {
	checkpoint *domain.Checkpoint
	records    []domain.Record
	failed     []*domain.FailedLookup
	mu         sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// -----------------------------------------------------------------------------
// Checkpoint Repository
// -----------------------------------------------------------------------------

type CheckpointRepo struct {
	store *MemoryStorage
}

func NewCheckpointRepo(store *MemoryStorage) *CheckpointRepo {
	return &CheckpointRepo{store: store}
}

func (r *CheckpointRepo) Get(ctx context.Context) (*domain.Checkpoint, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if r.store.checkpoint == nil {
		return nil, storage.ErrCheckpointNotFound
	}
	cp := *r.store.checkpoint
	return &cp, nil
}

func (r *CheckpointRepo) Save(ctx context.Context, cp *domain.Checkpoint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *cp
	r.store.checkpoint = &c
	return nil
}

// -----------------------------------------------------------------------------
// Record Repository
// -----------------------------------------------------------------------------

type RecordRepo struct {
	store *MemoryStorage
}

func NewRecordRepo(store *MemoryStorage) *RecordRepo {
	return &RecordRepo{store: store}
}

func (r *RecordRepo) ReplaceAll(ctx context.Context, records []domain.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append([]domain.Record(nil), records...)
	return nil
}

func (r *RecordRepo) GetAll(ctx context.Context) ([]domain.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Record(nil), r.store.records...), nil
}

// -----------------------------------------------------------------------------
// Failed Lookup Repository
// -----------------------------------------------------------------------------

type FailedLookupRepo struct {
	store *MemoryStorage
}

func NewFailedLookupRepo(store *MemoryStorage) *FailedLookupRepo {
	return &FailedLookupRepo{store: store}
}

func (r *FailedLookupRepo) Add(ctx context.Context, fl *domain.FailedLookup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f := *fl
	r.store.failed = append(r.store.failed, &f)
	return nil
}

func (r *FailedLookupRepo) List(ctx context.Context) ([]*domain.FailedLookup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*domain.FailedLookup, len(r.store.failed))
	for i, f := range r.store.failed {
		c := *f
		out[i] = &c
	}
	return out, nil
}

func (r *FailedLookupRepo) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.failed), nil
}
