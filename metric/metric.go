package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Origin check verdict labels
const (
	VerdictAllowed  = "allowed"
	VerdictRejected = "rejected"
)

// Metrics contains the server-level metrics
type Metrics struct {
	// MessagesSerialized counts forward messages serialized for delivery
	MessagesSerialized prometheus.Counter
	// MessagesOversized counts messages replaced by a size-limit exception
	MessagesOversized prometheus.Counter
	// MessageBytes observes serialized message sizes
	MessageBytes prometheus.Histogram
	// OriginChecks counts origin validations by verdict
	OriginChecks *prometheus.CounterVec
}

// NewMetrics creates the server metrics, unregistered
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesSerialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamlit",
			Subsystem: "messages",
			Name:      "serialized_total",
			Help:      "Total forward messages serialized for delivery",
		}),

		MessagesOversized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamlit",
			Subsystem: "messages",
			Name:      "oversized_total",
			Help:      "Total messages replaced by a size-limit exception",
		}),

		MessageBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streamlit",
			Subsystem: "messages",
			Name:      "size_bytes",
			Help:      "Size distribution of serialized forward messages",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
		}),

		OriginChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamlit",
			Subsystem: "server",
			Name:      "origin_checks_total",
			Help:      "Origin validations by verdict",
		}, []string{"verdict"}),
	}
}

// Registry manages the registration and exposure of server metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry
	metrics            *Metrics
}

// NewRegistry creates a metrics registry with the server metrics and Go
// runtime collectors registered
func NewRegistry() *Registry {
	prometheusRegistry := prometheus.NewRegistry()

	metrics := NewMetrics()
	prometheusRegistry.MustRegister(
		metrics.MessagesSerialized,
		metrics.MessagesOversized,
		metrics.MessageBytes,
		metrics.OriginChecks,
	)

	prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		prometheusRegistry: prometheusRegistry,
		metrics:            metrics,
	}
}

// Metrics returns the server metrics
func (r *Registry) Metrics() *Metrics {
	return r.metrics
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// Handler returns an http.Handler serving the registry in Prometheus format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
