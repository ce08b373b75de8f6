package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	platformmetrics "readiness/internal/platform/metrics"
	"readiness/internal/readiness/handler"
	"readiness/internal/readiness/metrics"
	"readiness/pkg/platform/httputil"
	"readiness/pkg/platform/middleware/requestid"
	"readiness/pkg/platform/middleware/requesttime"
)

// NewRouter mounts the readiness API, health and metrics endpoints.
func NewRouter(svc handler.Service, b *Backend, reg *prometheus.Registry, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", health(b))
	if reg != nil {
		r.Handle("/metrics", platformmetrics.Handler(reg))
	}

	r.Group(func(r chi.Router) {
		r.Use(requesttime.AsOf)
		handler.New(svc, logger, m).Register(r)
	})
	return r
}

func health(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if b != nil && b.DB != nil {
			if err := b.DB.PingContext(ctx); err != nil {
				status["postgres"] = "unavailable"
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		// Redis only backs the cache, so losing it never fails the check.
		if b != nil && b.Redis != nil {
			if err := b.Redis.Health(ctx); err != nil {
				status["redis"] = "unavailable"
			}
		}
		httputil.WriteJSON(w, code, status)
	}
}
