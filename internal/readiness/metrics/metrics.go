package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the readiness module. All methods are
// safe on a nil receiver.
type Metrics struct {
	// Pass duration by operation: evaluate, dashboard, scan
	PassLatency *prometheus.HistogramVec

	// Input fetch latencies by source
	FetchLatency *prometheus.HistogramVec

	// Overall person colors produced by passes
	Outcomes *prometheus.CounterVec

	// Config cache lookups by tier (l1, l2) and result (hit, miss, error)
	CacheLookups *prometheus.CounterVec

	// Deadline notices by kind and delivery result
	Notices *prometheus.CounterVec

	// Compliance records written by family
	RecordsWritten *prometheus.CounterVec
}

// New registers the readiness metrics on reg. A nil reg leaves them
// unregistered, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PassLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "readiness_pass_duration_seconds",
			Help:    "Duration of readiness passes including input fetches",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),

		FetchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "readiness_fetch_duration_seconds",
			Help:    "Duration of readiness input fetches by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}),

		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "readiness_person_outcomes_total",
			Help: "Overall person colors computed by readiness passes",
		}, []string{"color"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "readiness_config_cache_lookups_total",
			Help: "Configuration cache lookups by tier and result",
		}, []string{"tier", "result"}),

		Notices: f.NewCounterVec(prometheus.CounterOpts{
			Name: "readiness_deadline_notices_total",
			Help: "Deadline notices by kind and publish result",
		}, []string{"kind", "result"}),

		RecordsWritten: f.NewCounterVec(prometheus.CounterOpts{
			Name: "readiness_records_written_total",
			Help: "Compliance records written through the service",
		}, []string{"family"}),
	}
}

func (m *Metrics) ObservePass(operation string, d time.Duration) {
	if m != nil {
		m.PassLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveFetch(source string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementOutcome(color string) {
	if m != nil {
		m.Outcomes.WithLabelValues(color).Inc()
	}
}

func (m *Metrics) IncrementCache(tier, result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(tier, result).Inc()
	}
}

func (m *Metrics) IncrementNotice(kind, result string) {
	if m != nil {
		m.Notices.WithLabelValues(kind, result).Inc()
	}
}

func (m *Metrics) IncrementRecordWritten(family string) {
	if m != nil {
		m.RecordsWritten.WithLabelValues(family).Inc()
	}
}
