// Package metrics exposes Prometheus metrics for the signage service:
// compliance evaluation outcomes and scores, sign lifecycle counters, and
// HTTP request metrics. A single Collector owns the registry; the /metrics
// endpoint serves it via promhttp.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config contains metrics configuration.
type Config struct {
	// Enabled turns metric collection on.
	Enabled bool

	// Namespace is the metric name prefix. Default: "signage".
	Namespace string
}

// Collector owns the Prometheus registry and all metric families.
// A nil *Collector is valid and records nothing, so callers never need
// to guard their instrumentation sites.
type Collector struct {
	registry *prometheus.Registry

	evaluationsTotal   *prometheus.CounterVec
	ruleOutcomesTotal  *prometheus.CounterVec
	complianceScore    *prometheus.HistogramVec
	evaluationDuration prometheus.Histogram

	signsCreatedTotal *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector with a fresh registry. Returns nil
// when metrics are disabled.
func NewCollector(cfg Config) *Collector {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "signage"
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collector{
		registry: registry,
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "compliance_evaluations_total",
				Help:      "Total compliance evaluations by sign type and verdict",
			},
			[]string{"sign_type", "compliant"},
		),
		ruleOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "compliance_rule_outcomes_total",
				Help:      "Per-rule pass/fail outcomes",
			},
			[]string{"rule_id", "outcome"},
		),
		complianceScore: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "compliance_score",
				Help:      "Distribution of compliance scores",
				Buckets:   []float64{10, 25, 50, 75, 90, 95, 100},
			},
			[]string{"sign_type"},
		),
		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "compliance_evaluation_duration_seconds",
				Help:      "Duration of a rulebook evaluation",
				// Evaluations are pure in-memory regex work, well under a millisecond.
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
		),
		signsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "signs_created_total",
				Help:      "Signs created, by sign type",
			},
			[]string{"sign_type"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration by route",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		c.evaluationsTotal,
		c.ruleOutcomesTotal,
		c.complianceScore,
		c.evaluationDuration,
		c.signsCreatedTotal,
		c.httpRequestsTotal,
		c.httpRequestDuration,
	)
	return c
}

// ObserveEvaluation records one compliance evaluation.
func (c *Collector) ObserveEvaluation(signType string, compliant bool, score int, duration time.Duration) {
	if c == nil {
		return
	}
	c.evaluationsTotal.WithLabelValues(signType, strconv.FormatBool(compliant)).Inc()
	c.complianceScore.WithLabelValues(signType).Observe(float64(score))
	c.evaluationDuration.Observe(duration.Seconds())
}

// ObserveRuleOutcome records a single rule result.
func (c *Collector) ObserveRuleOutcome(ruleID string, passed bool) {
	if c == nil {
		return
	}
	outcome := "fail"
	if passed {
		outcome = "pass"
	}
	c.ruleOutcomesTotal.WithLabelValues(ruleID, outcome).Inc()
}

// ObserveSignCreated records a sign creation.
func (c *Collector) ObserveSignCreated(signType string) {
	if c == nil {
		return
	}
	c.signsCreatedTotal.WithLabelValues(signType).Inc()
}

// ObserveHTTPRequest records a served HTTP request.
func (c *Collector) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler returns the /metrics HTTP handler. A nil collector serves 404.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
