// Package metrics records per-run counters for maintenance jobs. Runs are
// short-lived, so nothing is served: the registry is written to a
// node-exporter textfile when the run ends.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels used by the services.
const (
	OutcomeInserted = "inserted"
	OutcomeUpdated  = "updated"
	OutcomeSkipped  = "skipped"
	OutcomeDeleted  = "deleted"
	OutcomeFailed   = "failed"
)

// Metrics holds the job collectors on a private registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sitekit_operations_total",
			Help: "Records touched by maintenance operations, by operation and outcome",
		}, []string{"operation", "outcome"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitekit_run_duration_seconds",
			Help:    "Duration of maintenance command runs",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"command"}),
	}
}

// Add records n records with the given outcome.
func (m *Metrics) Add(operation, outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Add(float64(n))
}

// ObserveRun records how long a command took.
func (m *Metrics) ObserveRun(command string, d time.Duration) {
	if m != nil {
		m.runDuration.WithLabelValues(command).Observe(d.Seconds())
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the registry in the text exposition format. The
// write goes through a temporary file so readers never see a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
