// Package metrics records solver activity in a private Prometheus registry.
// There is no HTTP listener; a run ends by writing the registry in the text
// exposition format for a node-exporter textfile collector.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "g25mix"

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the solver collectors. A nil *Metrics is valid and records
// nothing, so callers can make metrics optional without branching.
type Metrics struct {
	registry   *prometheus.Registry
	solves     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	iterations *prometheus.HistogramVec
	distance   *prometheus.HistogramVec
	resets     *prometheus.CounterVec
	active     prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solves_total",
			Help:      "Admixture solves by algorithm and outcome.",
		}, []string{"algorithm", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_iterations",
			Help:      "Outer iterations performed per solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		}, []string{"algorithm"}),
		distance: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_distance",
			Help:      "Best distance reached per solve.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.02, 0.03, 0.05, 0.1, 0.2},
		}, []string{"algorithm"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solve_resets_total",
			Help:      "Degenerate trials reset to uniform weights.",
		}, []string{"algorithm"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_solves",
			Help:      "Solves currently running.",
		}),
	}
	m.registry.MustRegister(m.solves, m.duration, m.iterations, m.distance, m.resets, m.active)

	return m
}

// Registry exposes the underlying registry (for tests and custom export).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// Outcome describes one finished solve.
type Outcome struct {
	Algorithm  string
	Duration   time.Duration
	Iterations int
	Distance   float64
	Resets     int
	Err        error
}

// Begin marks a solve as active and returns the function that records its
// outcome. The returned function must be called exactly once.
func (m *Metrics) Begin() func(Outcome) {
	if m == nil {
		return func(Outcome) {}
	}
	m.active.Inc()

	return func(o Outcome) {
		m.active.Dec()
		m.Observe(o)
	}
}

// Observe records a finished solve. Failed solves only count towards
// solves_total{status="error"}.
func (m *Metrics) Observe(o Outcome) {
	if m == nil {
		return
	}
	if o.Err != nil {
		m.solves.WithLabelValues(o.Algorithm, StatusError).Inc()
		return
	}
	m.solves.WithLabelValues(o.Algorithm, StatusOK).Inc()
	m.duration.WithLabelValues(o.Algorithm).Observe(o.Duration.Seconds())
	m.iterations.WithLabelValues(o.Algorithm).Observe(float64(o.Iterations))
	m.distance.WithLabelValues(o.Algorithm).Observe(o.Distance)
	if o.Resets > 0 {
		m.resets.WithLabelValues(o.Algorithm).Add(float64(o.Resets))
	}
}

// ErrNoPath indicates WriteTextfile was called with an empty path.
var ErrNoPath = errors.New("metrics: empty textfile path")

// WriteTextfile atomically writes the registry to path in the Prometheus
// text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if path == "" {
		return ErrNoPath
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %q: %w", path, err)
	}

	return nil
}
