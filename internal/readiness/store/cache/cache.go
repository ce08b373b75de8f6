// Package cache decorates a ConfigStore with a two-tier cache: an in-process
// expirable LRU in front of Redis. Configuration changes rarely and every
// pass reads all of it, so both tiers hold whole tables as JSON.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"readiness/internal/readiness/metrics"
	"readiness/internal/readiness/models"
	"readiness/internal/readiness/ports"
	"readiness/pkg/platform/circuit"
)

const (
	keyRules     = "rules"
	keyMappings  = "mappings"
	keyEquipment = "equipment"

	defaultPrefix = "readiness:config:"
	defaultTTL    = 5 * time.Minute
	defaultSize   = 16

	// Redis is retried this long after the breaker opens.
	defaultCooldown = 30 * time.Second
)

// Store implements ports.ConfigStore. Misses fall through to the origin;
// Redis failures are logged and served from the origin, and repeated
// failures open a breaker that bypasses Redis until it recovers.
type Store struct {
	origin ports.ConfigStore
	local  *expirable.LRU[string, []byte]
	redis  *redis.Client

	breaker  *circuit.Breaker
	cooldown time.Duration
	// retryAt is the unix-nano time after which an open breaker lets one
	// probe through to Redis.
	retryAt atomic.Int64

	prefix  string
	ttl     time.Duration
	size    int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Store)

// WithRedis enables the shared L2 tier. A nil client leaves it disabled.
func WithRedis(client *redis.Client) Option {
	return func(s *Store) {
		s.redis = client
	}
}

// WithTTL sets the lifetime of entries in both tiers.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithPrefix namespaces Redis keys, e.g. by rule version.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithCooldown sets how long Redis is bypassed after the breaker opens.
func WithCooldown(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

// WithBreaker replaces the default Redis circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Store) {
		if b != nil {
			s.breaker = b
		}
	}
}

// VersionedPrefix namespaces keys by rule version, so servers running
// different rule sets never read each other's entries.
func VersionedPrefix(version string) string {
	if version == "" {
		return defaultPrefix
	}
	return defaultPrefix + version + ":"
}

func New(origin ports.ConfigStore, opts ...Option) *Store {
	s := &Store{
		origin:   origin,
		breaker:  circuit.New("config-cache-redis", circuit.WithFailureThreshold(3)),
		cooldown: defaultCooldown,
		prefix:   defaultPrefix,
		ttl:      defaultTTL,
		size:     defaultSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.local = expirable.NewLRU[string, []byte](s.size, nil, s.ttl)
	return s
}

func (s *Store) LoadRules(ctx context.Context) ([]models.RuleEntry, error) {
	return load(ctx, s, keyRules, s.origin.LoadRules)
}

func (s *Store) LoadMappings(ctx context.Context) ([]models.DocumentMapping, error) {
	return load(ctx, s, keyMappings, s.origin.LoadMappings)
}

func (s *Store) LoadEquipment(ctx context.Context) ([]models.Equipment, error) {
	return load(ctx, s, keyEquipment, s.origin.LoadEquipment)
}

// Invalidate drops every cached table from both tiers.
func (s *Store) Invalidate(ctx context.Context) error {
	s.local.Purge()
	if !s.redisUsable() {
		return nil
	}
	err := s.redis.Del(ctx, s.prefix+keyRules, s.prefix+keyMappings, s.prefix+keyEquipment).Err()
	s.record(err)
	return err
}

func load[T any](ctx context.Context, s *Store, key string, fetch func(context.Context) (T, error)) (T, error) {
	if raw, ok := s.local.Get(key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			s.metrics.IncrementCache("l1", "hit")
			return v, nil
		}
		s.local.Remove(key)
	}
	s.metrics.IncrementCache("l1", "miss")

	if raw, ok := s.getRedis(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			s.local.Add(key, raw)
			return v, nil
		}
		s.logger.WarnContext(ctx, "discarding undecodable config cache entry", "key", s.prefix+key)
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	s.local.Add(key, raw)
	s.setRedis(ctx, key, raw)
	return v, nil
}

func (s *Store) getRedis(ctx context.Context, key string) ([]byte, bool) {
	if !s.redisUsable() {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, s.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		s.record(nil)
		s.metrics.IncrementCache("l2", "miss")
		return nil, false
	case err != nil:
		s.record(err)
		s.metrics.IncrementCache("l2", "error")
		s.logger.WarnContext(ctx, "config cache read failed", "key", s.prefix+key, "error", err)
		return nil, false
	}
	s.record(nil)
	s.metrics.IncrementCache("l2", "hit")
	return raw, true
}

func (s *Store) setRedis(ctx context.Context, key string, raw []byte) {
	if !s.redisUsable() {
		return
	}
	err := s.redis.Set(ctx, s.prefix+key, raw, s.ttl).Err()
	s.record(err)
	if err != nil {
		s.logger.WarnContext(ctx, "config cache write failed", "key", s.prefix+key, "error", err)
	}
}

func (s *Store) redisUsable() bool {
	if s.redis == nil {
		return false
	}
	if !s.breaker.IsOpen() {
		return true
	}
	return time.Now().UnixNano() >= s.retryAt.Load()
}

func (s *Store) record(err error) {
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.Info("config cache redis re-enabled", "breaker", s.breaker.Name())
		}
		return
	}
	_, change := s.breaker.RecordFailure()
	if s.breaker.IsOpen() {
		s.retryAt.Store(time.Now().Add(s.cooldown).UnixNano())
	}
	if change.Opened {
		s.logger.Warn("config cache redis disabled after repeated failures", "breaker", s.breaker.Name())
	}
}
