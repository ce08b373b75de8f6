package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Service.FetchTimeout)
	assert.Equal(t, "readiness.deadlines", cfg.Kafka.Topic)
	assert.True(t, cfg.Database.Migrate)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("READINESS_ADDR", ":9090")
	t.Setenv("READINESS_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("READINESS_DASHBOARD_CONCURRENCY", "2")
	t.Setenv("READINESS_SCAN_INTERVAL", "1h")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2, cfg.Service.DashboardConcurrency)
	assert.Equal(t, time.Hour, cfg.Service.ScanInterval)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("READINESS_FETCH_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "parse env")
}
