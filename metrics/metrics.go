package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the analysis engine. All helper
// methods are nil-safe so callers that don't collect metrics can pass a
// nil *Metrics and forget about it.
type Metrics struct {
	AnalysesTotal          prometheus.Counter
	JurisdictionsProcessed prometheus.Counter
	JurisdictionsDegraded  prometheus.Counter
	JurisdictionsFailed    prometheus.Counter
	RowsRejected           prometheus.Counter
	AnalysisDuration       prometheus.Histogram
}

// New creates a Metrics instance registered on the default registerer.
func New() *Metrics {
	return NewWith(nil)
}

// NewWith creates a Metrics instance registered on reg; nil means the
// default registerer. Tests pass their own registry to avoid duplicate
// registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	if reg == nil {
		factory = promauto.With(prometheus.DefaultRegisterer)
	}

	return &Metrics{
		AnalysesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexuscheck_analyses_total",
			Help: "Total number of analysis runs",
		}),
		JurisdictionsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexuscheck_jurisdictions_processed_total",
			Help: "Total number of jurisdictions fully analyzed",
		}),
		JurisdictionsDegraded: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexuscheck_jurisdictions_degraded_total",
			Help: "Total number of jurisdictions skipped for missing rule research",
		}),
		JurisdictionsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexuscheck_jurisdictions_failed_total",
			Help: "Total number of jurisdictions that errored during analysis",
		}),
		RowsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "nexuscheck_rows_rejected_total",
			Help: "Total number of malformed transaction rows rejected",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexuscheck_analysis_duration_seconds",
			Help:    "Duration of complete analysis runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementAnalyses records the start of an analysis run.
func (m *Metrics) IncrementAnalyses() {
	if m == nil {
		return
	}
	m.AnalysesTotal.Inc()
}

// IncrementProcessed records one fully analyzed jurisdiction.
func (m *Metrics) IncrementProcessed() {
	if m == nil {
		return
	}
	m.JurisdictionsProcessed.Inc()
}

// IncrementDegraded records one jurisdiction skipped for missing rules.
func (m *Metrics) IncrementDegraded() {
	if m == nil {
		return
	}
	m.JurisdictionsDegraded.Inc()
}

// IncrementFailed records one jurisdiction that errored.
func (m *Metrics) IncrementFailed() {
	if m == nil {
		return
	}
	m.JurisdictionsFailed.Inc()
}

// AddRowsRejected records malformed rows dropped during intake.
func (m *Metrics) AddRowsRejected(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RowsRejected.Add(float64(n))
}

// ObserveAnalysis records the duration of an analysis run.
// Call with time.Now() from the start of the run.
func (m *Metrics) ObserveAnalysis(start time.Time) {
	if m == nil {
		return
	}
	m.AnalysisDuration.Observe(time.Since(start).Seconds())
}
