// Package config holds process configuration read from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures the readiness service configuration.
type Server struct {
	Addr     string `env:"READINESS_ADDR" envDefault:":8080"`
	LogLevel string `env:"READINESS_LOG_LEVEL" envDefault:"info"`
	// LogFormat is "json" or "text".
	LogFormat string `env:"READINESS_LOG_FORMAT" envDefault:"json"`
	RulesFile string `env:"READINESS_RULES_FILE"`
	// FixtureFile seeds an in-memory store when no database URL is set.
	FixtureFile string `env:"READINESS_FIXTURE_FILE"`

	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Service  Service
}

// Database configures the Postgres connection.
type Database struct {
	URL             string        `env:"READINESS_DATABASE_URL"`
	MaxOpenConns    int           `env:"READINESS_DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"READINESS_DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"READINESS_DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	Migrate         bool          `env:"READINESS_DATABASE_MIGRATE" envDefault:"true"`
}

// RedisConfig configures the optional Redis cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `env:"READINESS_REDIS_URL"`
	PoolSize     int           `env:"READINESS_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"READINESS_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"READINESS_REDIS_DIAL_TIMEOUT" envDefault:"2s"`
	ReadTimeout  time.Duration `env:"READINESS_REDIS_READ_TIMEOUT" envDefault:"1s"`
	WriteTimeout time.Duration `env:"READINESS_REDIS_WRITE_TIMEOUT" envDefault:"1s"`
}

// Kafka configures deadline notice publishing. No brokers disables it.
type Kafka struct {
	Brokers     []string `env:"READINESS_KAFKA_BROKERS" envSeparator:","`
	Topic       string   `env:"READINESS_KAFKA_TOPIC" envDefault:"readiness.deadlines"`
	Partitions  int32    `env:"READINESS_KAFKA_PARTITIONS" envDefault:"3"`
	Replication int16    `env:"READINESS_KAFKA_REPLICATION" envDefault:"1"`
	ClientID    string   `env:"READINESS_KAFKA_CLIENT_ID" envDefault:"readiness"`
}

// Service tunes the readiness service.
type Service struct {
	FetchTimeout         time.Duration `env:"READINESS_FETCH_TIMEOUT" envDefault:"5s"`
	DashboardConcurrency int           `env:"READINESS_DASHBOARD_CONCURRENCY" envDefault:"8"`
	CacheTTL             time.Duration `env:"READINESS_CACHE_TTL" envDefault:"5m"`
	CacheSize            int           `env:"READINESS_CACHE_SIZE" envDefault:"16"`
	// ScanInterval schedules the deadline scan; zero disables it.
	ScanInterval time.Duration `env:"READINESS_SCAN_INTERVAL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
