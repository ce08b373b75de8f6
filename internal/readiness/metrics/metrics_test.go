package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePass("evaluate", time.Millisecond)
		m.ObserveFetch("records", time.Millisecond)
		m.IncrementOutcome("red")
		m.IncrementCache("l1", "hit")
		m.IncrementNotice("expired", "published")
		m.IncrementRecordWritten("condition")
	})
}

func TestMetricsRegisterOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementOutcome("yellow")
	m.IncrementOutcome("yellow")
	m.IncrementCache("l2", "miss")
	m.ObservePass("dashboard", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("yellow")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("l2", "miss")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "readiness_pass_duration_seconds")
}

func TestNewWithoutRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		New(nil)
		New(nil)
	})
}
