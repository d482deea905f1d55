package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farhapartex/random-wiki/internal/models"
)

// Metrics holds the fetch counters
type Metrics struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "random_wiki",
			Name:      "fetch_attempts_total",
			Help:      "Retry-loop attempts by language and outcome reason.",
		}, []string{"language", "reason"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "random_wiki",
			Name:      "fetches_total",
			Help:      "Completed fetches by language and outcome.",
		}, []string{"language", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "random_wiki",
			Name:      "fetch_duration_seconds",
			Help:      "Wall time of a whole fetch including retries.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8),
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.attempts,
		m.fetches,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Observe records one finished fetch
func (m *Metrics) Observe(result *models.FetchResult) {
	for _, a := range result.Attempts {
		m.attempts.WithLabelValues(result.Language, string(a.Reason)).Inc()
	}

	outcome := "failure"
	if result.Success {
		outcome = "success"
	}
	m.fetches.WithLabelValues(result.Language, outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(result.Duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
