package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

const (
	namespace = "screening"

	// Labels
	categoryLabel = "category"
	outcomeLabel  = "outcome"
)

// Recorder collects per-run counters in a private registry and writes them
// in the node-exporter textfile format.
type Recorder struct {
	registry *prometheus.Registry
	path     string

	fetches  *prometheus.CounterVec
	stored   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

// NewRecorder registers the run metrics. An empty path disables Flush.
func NewRecorder(path string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		path:     path,
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_total",
				Help:      "number of property lookups by outcome",
			},
			[]string{categoryLabel, outcomeLabel},
		),
		stored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stored_results_total",
				Help:      "number of results written to the store",
			},
			[]string{categoryLabel},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "latency of property lookups",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{categoryLabel},
		),
	}
	r.registry.MustRegister(r.fetches, r.stored, r.duration)
	return r
}

// ObserveFetch counts one lookup and its latency.
func (r *Recorder) ObserveFetch(category domain.Category, outcome string, elapsed time.Duration) {
	r.fetches.With(prometheus.Labels{categoryLabel: string(category), outcomeLabel: outcome}).Inc()
	r.duration.With(prometheus.Labels{categoryLabel: string(category)}).Observe(elapsed.Seconds())
}

// RecordStored counts one persisted result.
func (r *Recorder) RecordStored(category domain.Category) {
	r.stored.With(prometheus.Labels{categoryLabel: string(category)}).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Flush writes the textfile atomically.
func (r *Recorder) Flush() error {
	if r.path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
