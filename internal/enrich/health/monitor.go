// Package health exposes pipeline progress over HTTP for operators and
// scrapers.
package health

import (
	"context"
	"log/slog"

	"github.com/vietddude/enricher/internal/enrich/pipeline"
	"github.com/vietddude/enricher/internal/infra/storage"
)

// Status represents overall health.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// degradedFailureRatio is the failed-lookup share above which the run
// is reported degraded.
const degradedFailureRatio = 0.25

// StatusSource provides a progress snapshot.
type StatusSource interface {
	Status() pipeline.Status
}

// Report is the detailed health payload.
type Report struct {
	Status        Status  `json:"status"`
	Running       bool    `json:"running"`
	Total         int     `json:"total"`
	Resume        int     `json:"resume"`
	Completed     int     `json:"completed"`
	FailedLookups int     `json:"failed_lookups"`
	Progress      float64 `json:"progress"`
}

// Monitor aggregates pipeline progress and lookup failures.
type Monitor struct {
	source StatusSource
	failed storage.FailedLookupRepository // may be nil
	log    *slog.Logger
}

// NewMonitor creates a health monitor.
func NewMonitor(source StatusSource, failed storage.FailedLookupRepository) *Monitor {
	return &Monitor{
		source: source,
		failed: failed,
		log:    slog.Default().With("component", "health"),
	}
}

// CheckHealth builds the current report.
func (m *Monitor) CheckHealth(ctx context.Context) Report {
	status := m.source.Status()

	report := Report{
		Status:    StatusHealthy,
		Running:   status.Running,
		Total:     status.Total,
		Resume:    status.Resume,
		Completed: status.Completed,
	}
	if status.Total > 0 {
		report.Progress = float64(status.Resume+status.Completed) / float64(status.Total)
	}

	if m.failed != nil {
		count, err := m.failed.Count(ctx)
		if err != nil {
			m.log.Warn("Failed to count lookup failures", "error", err)
			report.Status = StatusDegraded
			return report
		}
		report.FailedLookups = count
		if status.Completed > 0 && float64(count)/float64(status.Completed) > degradedFailureRatio {
			report.Status = StatusDegraded
		}
	}

	return report
}
