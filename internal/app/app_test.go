package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/platform/config"
	platformmetrics "readiness/internal/platform/metrics"
	rconfig "readiness/internal/readiness/config"
	"readiness/internal/readiness/metrics"
	"readiness/pkg/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestOpenBackendMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("fixture file", func(t *testing.T) {
		cfg := config.Server{FixtureFile: "../readiness/store/memory/testdata/fixture.json"}
		b, err := OpenBackend(ctx, cfg, rconfig.DefaultRules(), quietLogger(), nil)
		require.NoError(t, err)
		defer b.Close()

		require.NotNil(t, b.Memory)
		assert.Nil(t, b.Postgres)
		people, err := b.People.ListPeople(ctx)
		require.NoError(t, err)
		assert.Len(t, people, 2)
	})

	t.Run("seed rules without fixture", func(t *testing.T) {
		rules, err := rconfig.LoadTOML("../readiness/config/testdata/rules.toml")
		require.NoError(t, err)

		b, err := OpenBackend(ctx, config.Server{}, rules, quietLogger(), nil)
		require.NoError(t, err)

		loaded, err := b.Config.LoadRules(ctx)
		require.NoError(t, err)
		assert.Len(t, loaded, 2)
	})

	t.Run("missing fixture", func(t *testing.T) {
		_, err := OpenBackend(ctx, config.Server{FixtureFile: "testdata/missing.json"}, rconfig.DefaultRules(), quietLogger(), nil)
		assert.Error(t, err)
	})
}

func TestInvalidateConfigCacheWithoutRedis(t *testing.T) {
	err := InvalidateConfigCache(context.Background(), nil, config.Server{}, rconfig.DefaultRules(), quietLogger())
	assert.NoError(t, err)
}

func TestOpenPublisherDisabled(t *testing.T) {
	pub, closeFn, err := OpenPublisher(context.Background(), config.Kafka{Topic: "readiness.deadlines"}, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, pub)
	closeFn()
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	logger := quietLogger()
	b, err := OpenBackend(ctx, config.Server{FixtureFile: "../readiness/store/memory/testdata/fixture.json"}, rconfig.DefaultRules(), logger, nil)
	require.NoError(t, err)

	reg := platformmetrics.NewRegistry()
	m := metrics.New(reg)
	svc, err := NewService(b, rconfig.DefaultRules(), config.Service{FetchTimeout: 0, DashboardConcurrency: 2}, nil, logger, m)
	require.NoError(t, err)
	router := NewRouter(svc, b, reg, logger, m)

	t.Run("health", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("dashboard with request id", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/readiness/dashboard?as_of=01.06.2025", nil)
		req.Header.Set("X-Request-ID", "req-42")
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
	})

	t.Run("metrics", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Contains(t, rr.Body.String(), "readiness_pass_duration_seconds")
	})
}
