// Package retry provides bounded retry with exponential backoff for
// fallible external operations.
//
// Failures are absorbed, never propagated: when the attempt budget is
// exhausted the caller receives the zero value and ok=false, and must
// substitute a default. This keeps a flaky source from aborting a run.
package retry

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/vietddude/enricher/internal/enrich/metrics"
)

// Policy defines retry behavior.
type Policy struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64

	// Sleep is overridable for tests. Nil means a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy provides sensible defaults for HTTP lookups.
var DefaultPolicy = Policy{
	MaxAttempts:     3,
	InitialDelay:    2 * time.Second,
	MaxDelay:        60 * time.Second,
	BackoffMultiple: 2.0,
}

// Do executes op up to MaxAttempts times, sleeping between attempts with
// exponential backoff. Returns the result and true on success, the zero
// value and false once the budget is exhausted or the context is done.
func Do[T any](ctx context.Context, policy Policy, name string, op func(context.Context) (T, error)) (T, bool) {
	var zero T
	sleep := policy.Sleep
	if sleep == nil {
		sleep = ctxSleep
	}

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, true
		}

		slog.Warn("Lookup attempt failed",
			"op", name,
			"attempt", attempt+1,
			"max_attempts", policy.MaxAttempts,
			"error", err,
		)

		if attempt == policy.MaxAttempts-1 {
			break
		}
		metrics.LookupRetries.WithLabelValues(name).Inc()

		if err := sleep(ctx, backoffDelay(attempt, policy)); err != nil {
			slog.Error("Retry aborted", "op", name, "error", err)
			return zero, false
		}
	}

	slog.Error("All retries failed", "op", name, "attempts", policy.MaxAttempts)
	return zero, false
}

func backoffDelay(attempt int, policy Policy) time.Duration {
	delay := float64(policy.InitialDelay) * math.Pow(policy.BackoffMultiple, float64(attempt))
	if policy.MaxDelay > 0 && delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}
	return time.Duration(delay)
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
