// Package service runs readiness passes: it fetches a person's inputs and the
// configuration snapshot in parallel, hands them to the engine, and exposes
// the results to handlers, the deadline scanner and the CLI.
package service

import (
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/metrics"
	"readiness/internal/readiness/ports"
)

const (
	defaultFetchTimeout = 5 * time.Second
	defaultConcurrency  = 8
)

type Service struct {
	people    ports.PersonStore
	config    ports.ConfigStore
	records   ports.RecordStore
	publisher ports.NoticePublisher
	engine    *engine.Engine

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	fetchTimeout time.Duration
	concurrency  int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher enables delivery of deadline notices from ScanDeadlines.
func WithPublisher(p ports.NoticePublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithFetchTimeout bounds the input fetches of a single person.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithConcurrency bounds how many people a dashboard or scan computes at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func New(people ports.PersonStore, config ports.ConfigStore, records ports.RecordStore, eng *engine.Engine, opts ...Option) (*Service, error) {
	if people == nil {
		return nil, errors.New("person store is required")
	}
	if config == nil {
		return nil, errors.New("config store is required")
	}
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if eng == nil {
		return nil, errors.New("engine is required")
	}

	svc := &Service{
		people:       people,
		config:       config,
		records:      records,
		engine:       eng,
		logger:       slog.Default(),
		tracer:       otel.Tracer("readiness/service"),
		fetchTimeout: defaultFetchTimeout,
		concurrency:  defaultConcurrency,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}
