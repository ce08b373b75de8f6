// Package cli implements readinessctl, the operator command line for the
// readiness service. Commands run against Postgres or a JSON fixture.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"readiness/internal/app"
	"readiness/internal/platform/config"
	"readiness/internal/platform/logger"
	rconfig "readiness/internal/readiness/config"
	"readiness/internal/readiness/models"
	"readiness/internal/readiness/ports"
	"readiness/internal/readiness/service"
	"readiness/pkg/requestcontext"
)

type globals struct {
	fixture  string
	database string
	redis    string
	rules    string
	asOf     string
	logLevel string
}

// Root returns the readinessctl command tree.
func Root() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "readinessctl",
		Short: "Inspect and maintain personnel readiness",
		Long: `readinessctl computes readiness from a Postgres database or a JSON fixture.

Connection settings come from the READINESS_* environment, and flags take
precedence. Dates are dd.mm.yyyy.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.fixture, "fixture", "", "JSON fixture to run against instead of a database")
	flags.StringVar(&g.database, "database", "", "Postgres URL (overrides READINESS_DATABASE_URL)")
	flags.StringVar(&g.redis, "redis", "", "Redis URL of the shared config cache (overrides READINESS_REDIS_URL)")
	flags.StringVar(&g.rules, "rules", "", "TOML rules file (overrides READINESS_RULES_FILE)")
	flags.StringVar(&g.asOf, "as-of", "", "evaluate as of this day instead of today (dd.mm.yyyy)")
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(statusCmd(g))
	root.AddCommand(dashboardCmd(g))
	root.AddCommand(deadlinesCmd(g))
	root.AddCommand(recordCmd(g))
	root.AddCommand(rulesCmd(g))
	root.AddCommand(migrateCmd(g))
	root.AddCommand(seedCmd(g))
	return root
}

// session is one command's wiring: configuration, stores and service.
type session struct {
	cfg     config.Server
	rules   *rconfig.Rules
	logger  *slog.Logger
	backend *app.Backend
	service *service.Service
	closers []func()
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// resolve reads the environment and applies flag overrides. An explicit
// fixture wins over any database URL.
func (g *globals) resolve() (config.Server, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Server{}, err
	}
	if g.database != "" {
		cfg.Database.URL = g.database
	}
	if g.fixture != "" {
		cfg.FixtureFile = g.fixture
		cfg.Database.URL = ""
	}
	if g.redis != "" {
		cfg.Redis.URL = g.redis
	}
	if g.rules != "" {
		cfg.RulesFile = g.rules
	}
	cfg.Database.Migrate = false
	return cfg, nil
}

func (g *globals) newLogger(w io.Writer) *slog.Logger {
	return logger.NewWithWriter(w, g.logLevel, "text")
}

// requestContext pins the request day when --as-of is set.
func (g *globals) requestContext(ctx context.Context) (context.Context, error) {
	if g.asOf == "" {
		return requestcontext.WithTime(ctx, time.Now()), nil
	}
	day, err := models.ParseDisplay(g.asOf)
	if err != nil {
		return nil, fmt.Errorf("--as-of: %w", err)
	}
	return requestcontext.WithTime(ctx, day.Time()), nil
}

func (g *globals) open(ctx context.Context, cmd *cobra.Command, publish bool) (*session, error) {
	cfg, err := g.resolve()
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" && cfg.FixtureFile == "" {
		return nil, errors.New("no data source: pass --fixture or --database, or set READINESS_DATABASE_URL")
	}
	log := g.newLogger(cmd.ErrOrStderr())

	rules, err := rconfig.LoadOrDefault(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, rules: rules, logger: log}
	backend, err := app.OpenBackend(ctx, cfg, rules, log, nil)
	if err != nil {
		return nil, err
	}
	s.backend = backend
	s.closers = append(s.closers, func() { _ = backend.Close() })

	var pub ports.NoticePublisher
	if publish {
		p, closePub, err := app.OpenPublisher(ctx, cfg.Kafka, log)
		if err != nil {
			s.Close()
			return nil, err
		}
		if p == nil {
			s.Close()
			return nil, errors.New("publishing requires READINESS_KAFKA_BROKERS")
		}
		pub = p
		s.closers = append(s.closers, closePub)
	}

	svc, err := app.NewService(backend, rules, cfg.Service, pub, log, nil)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.service = svc
	return s, nil
}
