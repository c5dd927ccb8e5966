package postgres

import (
	"context"
	"fmt"

	"github.com/vietddude/enricher/internal/core/domain"
)

// FailedLookupRepo implements storage.FailedLookupRepository using PostgreSQL.
type FailedLookupRepo struct {
	db *DB
}

// NewFailedLookupRepo creates a new PostgreSQL failed-lookup repository.
func NewFailedLookupRepo(db *DB) *FailedLookupRepo {
	return &FailedLookupRepo{db: db}
}

// Add records one exhausted lookup.
func (r *FailedLookupRepo) Add(ctx context.Context, fl *domain.FailedLookup) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO failed_lookups (id, cas, source, attempts, reason, failed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		fl.ID, fl.CAS, fl.Source, fl.Attempts, fl.Reason, fl.FailedAt)
	if err != nil {
		return fmt.Errorf("failed to add failed lookup: %w", err)
	}
	return nil
}

// List retrieves all failed lookups, oldest first.
func (r *FailedLookupRepo) List(ctx context.Context) ([]*domain.FailedLookup, error) {
	var out []*domain.FailedLookup
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, cas, source, attempts, reason, failed_at
		 FROM failed_lookups ORDER BY failed_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed lookups: %w", err)
	}
	return out, nil
}

// Count returns the number of failed lookups.
func (r *FailedLookupRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM failed_lookups`); err != nil {
		return 0, fmt.Errorf("failed to count failed lookups: %w", err)
	}
	return count, nil
}
