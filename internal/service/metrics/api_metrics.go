package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EndpointLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketdata",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of market and news endpoints",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	EndpointErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketdata",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Error answers by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
)

// Register adds the endpoint collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(EndpointLatency, EndpointErrors)
	})
}

// Observe records the latency of one call; status >= 400 also counts as an error.
func Observe(endpoint string, start time.Time, status int) {
	EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if status >= 400 {
		EndpointErrors.WithLabelValues(endpoint, statusClass(status)).Inc()
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status == 429:
		return "429"
	default:
		return "4xx"
	}
}
