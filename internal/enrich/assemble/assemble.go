// Package assemble composes one output record per catalogue position
// from the external lookup, the classifier and the fixed defaults.
package assemble

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/enricher/internal/core/domain"
	"github.com/vietddude/enricher/internal/enrich/classify"
	"github.com/vietddude/enricher/internal/enrich/lookup"
	"github.com/vietddude/enricher/internal/enrich/metrics"
	"github.com/vietddude/enricher/internal/enrich/retry"
	"github.com/vietddude/enricher/internal/infra/storage"
)

// Assembler builds output records. It is safe for concurrent use: all
// state is read-only after construction.
type Assembler struct {
	source     lookup.Source
	categories lookup.CategorySource // optional fallback, may be nil
	failedRepo storage.FailedLookupRepository
	policy     retry.Policy
	log        *slog.Logger
}

// New creates an assembler over the primary source.
func New(source lookup.Source, failedRepo storage.FailedLookupRepository, policy retry.Policy) *Assembler {
	return &Assembler{
		source:     source,
		failedRepo: failedRepo,
		policy:     policy,
		log:        slog.Default().With("component", "assembler"),
	}
}

// WithCategoryFallback wires the vendor category source, consulted only
// when the classifier cannot place the declared name.
func (a *Assembler) WithCategoryFallback(categories lookup.CategorySource) *Assembler {
	a.categories = categories
	return a
}

// Assemble builds the record for one (position, identifier, declared
// name) triple. It never fails: an exhausted lookup degrades to empty
// enrichment fields with the identifier as name.
func (a *Assembler) Assemble(ctx context.Context, pos int, cas, declaredName string) domain.Record {
	a.log.Info("Processing", "row", pos+1, "cas", cas)

	start := time.Now()
	source, ok := retry.Do(ctx, a.policy, "pubchem", func(ctx context.Context) (domain.SourceRecord, error) {
		return a.source.Lookup(ctx, cas)
	})
	metrics.LookupLatency.WithLabelValues(domain.SourcePubChem).Observe(time.Since(start).Seconds())

	if !ok {
		metrics.LookupFailures.WithLabelValues(domain.SourcePubChem).Inc()
		source = domain.SourceRecord{Name: cas}
		a.recordFailure(ctx, cas, domain.SourcePubChem)
	}

	category := classify.Categorize(declaredName)
	if category == domain.DefaultCategory && a.categories != nil {
		if vendorCategory, ok := retry.Do(ctx, a.policy, "vendor", func(ctx context.Context) (string, error) {
			return a.categories.Category(ctx, cas)
		}); ok && vendorCategory != "" {
			category = vendorCategory
		} else if !ok {
			metrics.LookupFailures.WithLabelValues(domain.SourceVendor).Inc()
		}
	}

	return domain.Record{
		ProductCode:  domain.ProductCode(pos),
		Name:         declaredName,
		CAS:          cas,
		Synonyms:     declaredName,
		Formula:      source.Formula,
		Weight:       source.Weight,
		Appearance:   source.Appearance,
		Storage:      domain.DefaultStorage,
		Shipping:     domain.DefaultShipping,
		Applications: domain.DefaultApplications,
		Category:     category,
	}
}

func (a *Assembler) recordFailure(ctx context.Context, cas, source string) {
	if a.failedRepo == nil {
		return
	}
	fl := &domain.FailedLookup{
		ID:       uuid.NewString(),
		CAS:      cas,
		Source:   source,
		Attempts: a.policy.MaxAttempts,
		Reason:   "retry budget exhausted",
		FailedAt: time.Now().UTC(),
	}
	if err := a.failedRepo.Add(ctx, fl); err != nil {
		a.log.Warn("Failed to record lookup failure", "cas", cas, "error", err)
	}
}
