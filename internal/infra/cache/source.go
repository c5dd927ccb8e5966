package cache

import (
	"context"
	"log/slog"

	"github.com/vietddude/enricher/internal/core/domain"
	"github.com/vietddude/enricher/internal/enrich/lookup"
	"github.com/vietddude/enricher/internal/enrich/metrics"
)

// recordStore is the slice of Client the decorator needs; narrowed so
// tests can stub it.
type recordStore interface {
	GetRecord(ctx context.Context, cas string) (domain.SourceRecord, bool, error)
	SetRecord(ctx context.Context, cas string, record domain.SourceRecord) error
}

// CachedSource decorates a lookup.Source with the Redis cache. Cache
// errors are logged and treated as misses; the cache must never fail a
// lookup.
type CachedSource struct {
	next  lookup.Source
	store recordStore
	log   *slog.Logger
}

// NewCachedSource wraps a source with the cache.
func NewCachedSource(next lookup.Source, store recordStore) *CachedSource {
	return &CachedSource{
		next:  next,
		store: store,
		log:   slog.Default().With("component", "lookup_cache"),
	}
}

// Lookup serves from the cache when possible, falling through to the
// wrapped source and populating the cache on success.
func (s *CachedSource) Lookup(ctx context.Context, cas string) (domain.SourceRecord, error) {
	record, found, err := s.store.GetRecord(ctx, cas)
	if err != nil {
		s.log.Warn("Cache read failed, treating as miss", "cas", cas, "error", err)
	}
	if found {
		metrics.CacheHits.Inc()
		return record, nil
	}
	metrics.CacheMisses.Inc()

	record, err = s.next.Lookup(ctx, cas)
	if err != nil {
		return domain.SourceRecord{}, err
	}

	if err := s.store.SetRecord(ctx, cas, record); err != nil {
		s.log.Warn("Cache write failed", "cas", cas, "error", err)
	}
	return record, nil
}
