package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vietddude/enricher/internal/enrich/metrics"
)

func testPolicy(maxAttempts int, sleeps *[]time.Duration) Policy {
	return Policy{
		MaxAttempts:     maxAttempts,
		InitialDelay:    2 * time.Second,
		MaxDelay:        60 * time.Second,
		BackoffMultiple: 2.0,
		Sleep: func(ctx context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return nil
		},
	}
}

func failNTimes(n int, value string) func(context.Context) (string, error) {
	calls := 0
	return func(ctx context.Context) (string, error) {
		calls++
		if calls <= n {
			return "", errors.New("transient failure")
		}
		return value, nil
	}
}

func TestDo_SucceedsWithinBudget(t *testing.T) {
	var sleeps []time.Duration
	policy := testPolicy(3, &sleeps)

	result, ok := Do(context.Background(), policy, "test", failNTimes(2, "value"))
	if !ok {
		t.Fatal("Expected success when budget covers failures")
	}
	if result != "value" {
		t.Errorf("Expected value, got %s", result)
	}

	// D=2s, B=2 -> delays 2s, 4s before the third attempt
	if len(sleeps) != 2 {
		t.Fatalf("Expected 2 sleeps, got %d", len(sleeps))
	}
	if sleeps[0] != 2*time.Second {
		t.Errorf("Expected first delay 2s, got %v", sleeps[0])
	}
	if sleeps[1] != 4*time.Second {
		t.Errorf("Expected second delay 4s, got %v", sleeps[1])
	}
}

func TestDo_ExhaustedBudget(t *testing.T) {
	var sleeps []time.Duration
	policy := testPolicy(3, &sleeps)

	result, ok := Do(context.Background(), policy, "test", failNTimes(3, "value"))
	if ok {
		t.Fatal("Expected soft failure when failures exceed budget")
	}
	if result != "" {
		t.Errorf("Expected zero value, got %s", result)
	}

	// No sleep after the final attempt
	if len(sleeps) != 2 {
		t.Errorf("Expected 2 sleeps, got %d", len(sleeps))
	}
}

func TestDo_FirstAttemptSuccess(t *testing.T) {
	var sleeps []time.Duration
	policy := testPolicy(3, &sleeps)

	result, ok := Do(context.Background(), policy, "test", failNTimes(0, "value"))
	if !ok || result != "value" {
		t.Fatalf("Expected immediate success, got %q ok=%v", result, ok)
	}
	if len(sleeps) != 0 {
		t.Errorf("Expected no sleeps, got %d", len(sleeps))
	}
}

func TestDo_MaxDelayCap(t *testing.T) {
	var sleeps []time.Duration
	policy := Policy{
		MaxAttempts:     5,
		InitialDelay:    10 * time.Second,
		MaxDelay:        15 * time.Second,
		BackoffMultiple: 2.0,
		Sleep: func(ctx context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	}

	_, ok := Do(context.Background(), policy, "test", failNTimes(5, ""))
	if ok {
		t.Fatal("Expected soft failure")
	}

	for i, d := range sleeps {
		if d > 15*time.Second {
			t.Errorf("Sleep %d exceeded max delay: %v", i, d)
		}
	}
}

func TestDo_CountsRetriedAttempts(t *testing.T) {
	var sleeps []time.Duration
	policy := testPolicy(3, &sleeps)

	counter := metrics.LookupRetries.WithLabelValues("exhausted-source")
	before := testutil.ToFloat64(counter)

	if _, ok := Do(context.Background(), policy, "exhausted-source", failNTimes(3, "")); ok {
		t.Fatal("Expected soft failure")
	}

	// Three attempts means two retries; the final attempt is not one.
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("Expected 2 retries counted, got %v", got)
	}
}

func TestDo_ContextCancelledDuringSleep(t *testing.T) {
	policy := Policy{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		BackoffMultiple: 2.0,
		Sleep: func(ctx context.Context, d time.Duration) error {
			return context.Canceled
		},
	}

	calls := 0
	_, ok := Do(context.Background(), policy, "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("transient failure")
	})
	if ok {
		t.Fatal("Expected soft failure on cancellation")
	}
	if calls != 1 {
		t.Errorf("Expected a single attempt before cancellation, got %d", calls)
	}
}
