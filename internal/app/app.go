// Package app assembles the readiness service from configuration. The server
// and the CLI share it so both run against the same stores.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"readiness/internal/platform/config"
	"readiness/internal/platform/kafka"
	"readiness/internal/platform/postgres"
	redisclient "readiness/internal/platform/redis"
	rconfig "readiness/internal/readiness/config"
	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/metrics"
	"readiness/internal/readiness/ports"
	"readiness/internal/readiness/publisher"
	"readiness/internal/readiness/service"
	"readiness/internal/readiness/store/cache"
	"readiness/internal/readiness/store/memory"
	pgstore "readiness/internal/readiness/store/postgres"
)

// Backend holds the stores a service runs against. Exactly one of Postgres
// and Memory is set.
type Backend struct {
	People  ports.PersonStore
	Config  ports.ConfigStore
	Records ports.RecordStore

	Postgres *pgstore.Store
	Memory   *memory.Store
	Cache    *cache.Store
	Redis    *redisclient.Client
	DB       *sql.DB

	closers []func() error
}

// Close releases connections in reverse order of opening.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenBackend connects to Postgres when a database URL is configured and
// otherwise builds an in-memory store from the fixture file, or from the seed
// rules of rules when there is none.
func OpenBackend(ctx context.Context, cfg config.Server, rules *rconfig.Rules, logger *slog.Logger, m *metrics.Metrics) (*Backend, error) {
	if cfg.Database.URL == "" {
		return openMemory(cfg, rules, logger)
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	b := &Backend{DB: db}
	b.closers = append(b.closers, db.Close)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.URL, logger); err != nil {
			_ = b.Close()
			return nil, err
		}
	}

	store := pgstore.New(db)
	b.Postgres = store
	b.People = store
	b.Records = store

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		// The cache degrades to its in-process tier without Redis.
		logger.WarnContext(ctx, "redis unavailable, config cache is local only", "error", err)
	}
	if rdb != nil {
		b.Redis = rdb
		b.closers = append(b.closers, rdb.Close)
	}
	b.Cache = configCache(store, cfg.Service, rules, rdb, logger, m)
	b.Config = b.Cache

	logger.InfoContext(ctx, "readiness backend ready", "store", "postgres", "redis", rdb != nil)
	return b, nil
}

func configCache(origin ports.ConfigStore, cfg config.Service, rules *rconfig.Rules, rdb *redisclient.Client, logger *slog.Logger, m *metrics.Metrics) *cache.Store {
	opts := []cache.Option{
		cache.WithTTL(cfg.CacheTTL),
		cache.WithSize(cfg.CacheSize),
		cache.WithLogger(logger),
		cache.WithMetrics(m),
	}
	opts = append(opts, cache.WithPrefix(cache.VersionedPrefix(rulesVersion(rules))))
	if rdb != nil {
		opts = append(opts, cache.WithRedis(rdb.Client))
	}
	return cache.New(origin, opts...)
}

func rulesVersion(rules *rconfig.Rules) string {
	if rules == nil {
		return ""
	}
	return rules.Version
}

// InvalidateConfigCache drops the shared Redis copy of the rule
// configuration for rules' version. Servers pick up the new configuration
// once their in-process entries expire. Without a Redis URL it does nothing.
func InvalidateConfigCache(ctx context.Context, db *sql.DB, cfg config.Server, rules *rconfig.Rules, logger *slog.Logger) error {
	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("invalidate config cache: %w", err)
	}
	if rdb == nil {
		return nil
	}
	defer rdb.Close()

	if err := configCache(pgstore.New(db), cfg.Service, rules, rdb, logger, nil).Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate config cache: %w", err)
	}
	logger.InfoContext(ctx, "config cache invalidated", "prefix", cache.VersionedPrefix(rulesVersion(rules)))
	return nil
}

func openMemory(cfg config.Server, rules *rconfig.Rules, logger *slog.Logger) (*Backend, error) {
	var store *memory.Store
	if cfg.FixtureFile != "" {
		loaded, err := memory.LoadFixture(cfg.FixtureFile)
		if err != nil {
			return nil, err
		}
		store = loaded
	} else {
		store = memory.New()
		store.AddRules(rules.Seed...)
	}
	logger.Info("readiness backend ready", "store", "memory", "fixture", cfg.FixtureFile)
	return &Backend{
		People:  store,
		Config:  store,
		Records: store,
		Memory:  store,
	}, nil
}

// OpenPublisher returns a Kafka publisher when brokers are configured. With
// none it returns a nil publisher, and deadline scans only log.
func OpenPublisher(ctx context.Context, cfg config.Kafka, logger *slog.Logger) (ports.NoticePublisher, func(), error) {
	client, err := kafka.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, func() {}, nil
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.Topic, cfg.Partitions, cfg.Replication); err != nil {
		client.Close()
		return nil, nil, err
	}
	logger.InfoContext(ctx, "deadline notices enabled", "topic", cfg.Topic, "brokers", cfg.Brokers)
	return publisher.NewKafka(client, cfg.Topic), closer(client), nil
}

func closer(client *kgo.Client) func() {
	return func() {
		client.Close()
	}
}

// NewService builds the readiness service over b with the engine configured
// from rules.
func NewService(b *Backend, rules *rconfig.Rules, cfg config.Service, pub ports.NoticePublisher, logger *slog.Logger, m *metrics.Metrics) (*service.Service, error) {
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithFetchTimeout(cfg.FetchTimeout),
		service.WithConcurrency(cfg.DashboardConcurrency),
	}
	if pub != nil {
		opts = append(opts, service.WithPublisher(pub))
	}
	svc, err := service.New(b.People, b.Config, b.Records, engine.New(rules.Policy()), opts...)
	if err != nil {
		return nil, fmt.Errorf("build readiness service: %w", err)
	}
	return svc, nil
}
