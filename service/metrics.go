package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess       = "success"
	OutcomeNoReportType  = "no_report_type"
	OutcomeInvalid       = "invalid_selection"
	OutcomeUpstreamError = "upstream_error"
	OutcomeEncodeError   = "encode_error"
)

// Metrics records report run outcomes
type Metrics struct {
	runs *prometheus.CounterVec
	rows *prometheus.HistogramVec
}

// NewMetrics registers the report collectors on reg; a nil reg leaves them unregistered
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vastureports",
			Name:      "report_runs_total",
			Help:      "Report runs by kind, format and outcome.",
		}, []string{"kind", "format", "outcome"}),
		rows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vastureports",
			Name:      "report_rows",
			Help:      "Rows per generated report.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.rows)
	}
	return m
}

func (m *Metrics) observeRun(kind, format, outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(kind, format, outcome).Inc()
}

func (m *Metrics) observeRows(kind string, n int) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(kind).Observe(float64(n))
}
