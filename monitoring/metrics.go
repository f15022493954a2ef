// Package monitoring exposes prediction counters in Prometheus format.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection kinds.
const (
	RejectEncoding   = "encoding"
	RejectValidation = "validation"
	RejectClassifier = "classifier"
	RejectRequest    = "request"
)

// Metrics owns a private registry so tests and multiple servers do not
// collide on the default one.
type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

// NewMetrics registers the counters and runtime collectors on a new registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creditrisk",
			Name:      "predictions_total",
			Help:      "Classified applicants by outcome.",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creditrisk",
			Name:      "rejections_total",
			Help:      "Submissions that did not produce a prediction, by error kind.",
		}, []string{"kind"}),
	}
	registry.MustRegister(
		m.predictions,
		m.rejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObservePrediction counts a successful classification by outcome label.
func (m *Metrics) ObservePrediction(outcome string) {
	m.predictions.WithLabelValues(outcome).Inc()
}

// ObserveRejection counts a request that produced no prediction.
func (m *Metrics) ObserveRejection(kind string) {
	m.rejections.WithLabelValues(kind).Inc()
}

// Handler serves the registry on /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
