package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"readiness/internal/app"
	"readiness/internal/platform/config"
	"readiness/internal/platform/httpserver"
	"readiness/internal/platform/logger"
	platformmetrics "readiness/internal/platform/metrics"
	rconfig "readiness/internal/readiness/config"
	"readiness/internal/readiness/metrics"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/readiness.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("readiness server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	rules, err := rconfig.LoadOrDefault(cfg.RulesFile)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "rules loaded", "version", rules.Version, "file", cfg.RulesFile)

	reg := platformmetrics.NewRegistry()
	m := metrics.New(reg)

	backend, err := app.OpenBackend(ctx, cfg, rules, log, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("backend close failed", "error", err)
		}
	}()

	pub, closePublisher, err := app.OpenPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	svc, err := app.NewService(backend, rules, cfg.Service, pub, log, m)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.Addr, app.NewRouter(svc, backend, reg, log, m))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting readiness server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down readiness server")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Service.ScanInterval > 0 {
		g.Go(func() error {
			log.InfoContext(gctx, "deadline scanner started", "interval", cfg.Service.ScanInterval.String())
			err := svc.RunScanner(gctx, cfg.Service.ScanInterval)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}
