// Package metrics exposes the Prometheus collectors reported by the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "geotree"

// Metrics groups the collectors for HTTP traffic, footprint submissions and plantations.
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	submissions        *prometheus.CounterVec
	footprintKg        prometheus.Histogram
	recommendedTrees   prometheus.Counter
	certificatesIssued prometheus.Counter
	reportRuns         *prometheus.CounterVec
}

// MustNewMetrics constructs Metrics and registers every collector on reg.
// A nil registerer falls back to the default registry. Registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests served, by route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Latency of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "carbon",
				Name:      "submissions_total",
				Help:      "Footprint submissions stored, by submission kind.",
			},
			[]string{"kind"},
		),
		footprintKg: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "carbon",
				Name:      "footprint_kg",
				Help:      "Estimated annual footprint per activity submission in kg CO2.",
				Buckets:   []float64{500, 1000, 2000, 4000, 8000, 16000, 32000},
			},
		),
		recommendedTrees: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "carbon",
				Name:      "recommended_trees_total",
				Help:      "Trees recommended across all activity submissions.",
			},
		),
		certificatesIssued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "plantation",
				Name:      "certificates_issued_total",
				Help:      "Plantation certificates issued.",
			},
		),
		reportRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reporting",
				Name:      "runs_total",
				Help:      "Daily report runs, by outcome.",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.submissions,
		m.footprintKg,
		m.recommendedTrees,
		m.certificatesIssued,
		m.reportRuns,
	)

	return m
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveSubmission counts a stored submission of the given kind.
func (m *Metrics) ObserveSubmission(kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind).Inc()
}

// ObserveFootprint records an activity estimate and the trees recommended for it.
// Negative tree counts are ignored.
func (m *Metrics) ObserveFootprint(totalKg float64, trees int) {
	if m == nil {
		return
	}
	m.footprintKg.Observe(totalKg)
	if trees > 0 {
		m.recommendedTrees.Add(float64(trees))
	}
}

// IncCertificates counts an issued plantation certificate.
func (m *Metrics) IncCertificates() {
	if m == nil {
		return
	}
	m.certificatesIssued.Inc()
}

// ObserveReportRun counts a daily report run with status "success" or "failure".
func (m *Metrics) ObserveReportRun(status string) {
	if m == nil {
		return
	}
	m.reportRuns.WithLabelValues(status).Inc()
}
