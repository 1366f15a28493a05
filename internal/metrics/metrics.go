// File: internal/metrics/metrics.go
// Description: Prometheus instrumentation for traversals and probes. The
// collectors live on a caller-owned registry so tests never fight over
// global registration.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/depscope/depscope-cli/api/schemas"
)

// Set bundles every collector the service exports.
type Set struct {
	TraversalsTotal   prometheus.Counter
	TraversalDuration prometheus.Histogram
	RecordsEmitted    prometheus.Counter
	ProbeDuration     prometheus.Histogram
	ProbeFailures     prometheus.Counter
}

// New registers the collectors on reg and returns the set.
func New(reg prometheus.Registerer) *Set {
	s := &Set{
		TraversalsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "depscope",
			Name:      "traversals_total",
			Help:      "Completed graph traversals, partial ones included.",
		}),
		TraversalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "depscope",
			Name:      "traversal_duration_seconds",
			Help:      "Wall-clock duration of a full graph traversal.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		RecordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "depscope",
			Name:      "records_emitted_total",
			Help:      "Enriched health records produced across all traversals.",
		}),
		ProbeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "depscope",
			Name:      "probe_duration_seconds",
			Help:      "Duration of individual health probe invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		ProbeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "depscope",
			Name:      "probe_failures_total",
			Help:      "Probes that errored or timed out and degraded to unknown.",
		}),
	}
	reg.MustRegister(
		s.TraversalsTotal,
		s.TraversalDuration,
		s.RecordsEmitted,
		s.ProbeDuration,
		s.ProbeFailures,
	)
	return s
}

// InstrumentProbe wraps a HealthProbe so every invocation feeds the probe
// collectors. The wrapped probe keeps the original's concurrency safety.
func (s *Set) InstrumentProbe(inner schemas.HealthProbe) schemas.HealthProbe {
	return schemas.HealthProbeFunc(func(ctx context.Context, componentID, declaredStatus string) (schemas.Health, error) {
		start := time.Now()
		health, err := inner.Check(ctx, componentID, declaredStatus)
		s.ProbeDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.ProbeFailures.Inc()
		}
		return health, err
	})
}
