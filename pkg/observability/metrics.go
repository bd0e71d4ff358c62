package observability

import (
	"context"

	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by checker hooks.
type Metrics struct {
	Checks      *prometheus.CounterVec
	Findings    *prometheus.CounterVec
	ParseErrors *prometheus.CounterVec
	Duration    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confcheck_checks_total",
				Help: "Total number of config validations, by result",
			},
			[]string{"result"},
		),
		Findings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confcheck_findings_total",
				Help: "Total number of validation findings, by kind",
			},
			[]string{"kind"},
		),
		ParseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confcheck_parse_errors_total",
				Help: "Total number of documents rejected by the parser",
			},
			[]string{"document", "kind"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "confcheck_check_duration_seconds",
				Help:    "Duration of config validations",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),
	}

	reg.MustRegister(m.Checks, m.Findings, m.ParseErrors, m.Duration)
	return m
}

// Hooks returns checker hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnParsed: func(_ context.Context, e *domain.ParseEvent) {
			if e.Err == nil {
				return
			}
			kind := domain.ParseErrorKind(e.Err)
			if kind == "" {
				kind = "other"
			}
			m.ParseErrors.WithLabelValues(e.Document, kind).Inc()
		},
		OnValidated: func(_ context.Context, e *domain.ValidateEvent) {
			result := "valid"
			if !e.Valid() {
				result = "invalid"
			}
			m.Checks.WithLabelValues(result).Inc()
			for kind, n := range e.Findings {
				m.Findings.WithLabelValues(kind).Add(float64(n))
			}
			m.Duration.Observe(e.Duration.Seconds())
		},
	}
}
