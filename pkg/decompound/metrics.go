package decompound

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeCacheHit = "cache_hit"
	outcomeSplit    = "split"
	outcomeFallback = "fallback"
)

// Metrics exposes Prometheus collectors for decompounding activity. A nil
// *Metrics records nothing.
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     prometheus.Histogram
	alternatives prometheus.Histogram
}

// MustNewMetrics registers the collectors with reg (the default registerer
// when nil) and panics on registration errors.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "decompound",
				Name:      "requests_total",
				Help:      "Words decompounded, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "decompound",
				Name:      "search_duration_seconds",
				Help:      "Time spent segmenting uncached words.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
		alternatives: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "decompound",
				Name:      "alternatives",
				Help:      "Number of minimal decompositions found per uncached word.",
				Buckets:   []float64{1, 2, 3, 4, 6, 8},
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.alternatives)
	return m
}

func (m *Metrics) observeHit() {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcomeCacheHit).Inc()
}

func (m *Metrics) observeSearch(outcome string, elapsed time.Duration, alternatives int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.alternatives.Observe(float64(alternatives))
}
