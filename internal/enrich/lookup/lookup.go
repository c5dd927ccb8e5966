// Package lookup contains the external source adapters that enrich a
// single identifier. Each adapter turns one CAS number into a partial
// record or an error; callers are expected to wrap calls in retry.Do.
package lookup

import (
	"context"
	"net/http"
	"time"

	"github.com/vietddude/enricher/internal/core/domain"
)

// Source queries a remote system for one identifier.
type Source interface {
	// Lookup returns a partial record for the identifier. Fields the
	// source does not know stay empty.
	Lookup(ctx context.Context, cas string) (domain.SourceRecord, error)
}

// CategorySource resolves a category label for one identifier.
type CategorySource interface {
	Category(ctx context.Context, cas string) (string, error)
}

// NewHTTPClient builds the shared client used by the adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
