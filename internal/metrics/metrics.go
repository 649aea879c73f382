// Package metrics exposes Prometheus instrumentation for verification and
// the HTTP server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// Verification results used as the "result" label.
const (
	ResultCompatible   = "compatible"
	ResultIncompatible = "incompatible"
	ResultIncomplete   = "incomplete"
)

// Registry holds every metric the service exports on its own Prometheus
// registry.
type Registry struct {
	VerificationsTotal   *prometheus.CounterVec
	VerificationDuration *prometheus.HistogramVec
	ViolationsTotal      *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CatalogParts *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.VerificationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pcverify_verifications_total",
			Help: "Total number of build verifications by profile and result",
		},
		[]string{"profile", "result"},
	)
	r.VerificationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pcverify_verification_duration_seconds",
			Help:    "Time spent evaluating the rule set for one build",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"profile"},
	)
	r.ViolationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pcverify_violations_total",
			Help: "Total number of violations reported by category and severity",
		},
		[]string{"category", "severity"},
	)

	r.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pcverify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pcverify_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.CatalogParts = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pcverify_catalog_parts",
			Help: "Number of parts loaded into the catalog by section",
		},
		[]string{"section"},
	)

	return r
}

// RecordVerification counts one finished verification and its violations.
func (r *Registry) RecordVerification(report *schema.Report, duration time.Duration) {
	result := ResultCompatible
	switch {
	case report.Error != nil:
		result = ResultIncomplete
	case !report.Compatible:
		result = ResultIncompatible
	}
	r.VerificationsTotal.WithLabelValues(report.Profile, result).Inc()
	r.VerificationDuration.WithLabelValues(report.Profile).Observe(duration.Seconds())

	for _, c := range report.Categories {
		for _, v := range c.Violations {
			r.ViolationsTotal.WithLabelValues(string(c.Name), string(v.Severity)).Inc()
		}
	}
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCatalogParts publishes per-section part counts.
func (r *Registry) SetCatalogParts(counts map[string]int) {
	r.CatalogParts.Reset()
	for section, n := range counts {
		r.CatalogParts.WithLabelValues(section).Set(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
