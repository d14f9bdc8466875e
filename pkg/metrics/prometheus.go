package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerCalls   *prometheus.CounterVec
	providerQuotes  *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	fallbackQuotes  prometheus.Counter
	alerts          *prometheus.CounterVec
	newsCache       *prometheus.CounterVec
}

// New creates a Prometheus recorder registered on reg (the default registry when nil).
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		providerCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketdata_provider_calls_total",
				Help: "Provider adapter invocations by outcome (ok, empty, error, timeout, skipped)",
			},
			[]string{"provider", "outcome"},
		),
		providerQuotes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketdata_provider_quotes_total",
				Help: "Quotes returned by each provider adapter",
			},
			[]string{"provider"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketdata_provider_duration_seconds",
				Help:    "Duration of provider adapter calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 12, 25, 45},
			},
			[]string{"provider"},
		),
		fallbackQuotes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "marketdata_fallback_quotes_total",
				Help: "Synthetic quotes produced for symbols no provider answered",
			},
		),
		alerts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketdata_alerts_generated_total",
				Help: "Alerts generated before prioritization",
			},
			[]string{"type", "severity"},
		),
		newsCache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketdata_news_cache_total",
				Help: "News response cache lookups",
			},
			[]string{"result"},
		),
	}
}

// RecordProviderCall records one adapter invocation.
func (r *Recorder) RecordProviderCall(provider, outcome string, quotes int, elapsed time.Duration) {
	r.providerCalls.WithLabelValues(provider, outcome).Inc()
	r.providerLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
	if quotes > 0 {
		r.providerQuotes.WithLabelValues(provider).Add(float64(quotes))
	}
}

// RecordFallback records n synthetic quotes.
func (r *Recorder) RecordFallback(n int) {
	if n > 0 {
		r.fallbackQuotes.Add(float64(n))
	}
}

// RecordAlert records a generated alert.
func (r *Recorder) RecordAlert(kind, severity string) {
	r.alerts.WithLabelValues(kind, severity).Inc()
}

// RecordCache records a news cache hit or miss.
func (r *Recorder) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.newsCache.WithLabelValues(result).Inc()
}
