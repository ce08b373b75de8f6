package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/models"
	dErrors "readiness/pkg/domain-errors"
)

// computeAll runs one pass over every person. The configuration snapshot is
// fetched once and shared read-only by all workers.
func (s *Service) computeAll(ctx context.Context, operation string) (models.Date, []models.PersonReadiness, error) {
	ctx, span := s.tracer.Start(ctx, "readiness."+operation)
	defer span.End()

	today := today(ctx)

	var (
		people []models.Person
		snap   *models.Snapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		start := time.Now()
		list, err := s.people.ListPeople(fetchCtx)
		s.metrics.ObserveFetch("people", time.Since(start))
		if err != nil {
			return translate(err, "failed to list people")
		}
		people = list
		return nil
	})
	g.Go(func() error {
		var err error
		snap, err = s.loadSnapshot(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, operation+" failed")
		return today, nil, err
	}

	pass := s.engine.NewPass(snap, today)
	results := make([]models.PersonReadiness, len(people))

	workers, wctx := errgroup.WithContext(ctx)
	workers.SetLimit(s.concurrency)
	for i, person := range people {
		workers.Go(func() error {
			if err := wctx.Err(); err != nil {
				return err
			}
			records := s.fetchRecords(wctx, person.ID)
			// A cancelled fetch looks like missing records; fail instead.
			if err := wctx.Err(); err != nil {
				return err
			}
			results[i] = pass.Compute(person, records)
			s.metrics.IncrementOutcome(results[i].Overall.String())
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, operation+" interrupted")
		return today, nil, translate(err, operation+" interrupted")
	}

	span.SetAttributes(attribute.Int("people", len(people)))
	return today, results, nil
}

// Dashboard returns every person's overall color with summary counts.
func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	start := time.Now()
	asOf, results, err := s.computeAll(ctx, "dashboard")
	if err != nil {
		s.logger.ErrorContext(ctx, "readiness dashboard failed",
			"request_id", requestID(ctx),
			"error", err,
		)
		return nil, err
	}

	out := &models.Dashboard{
		AsOf:   asOf,
		People: make([]models.PersonSummary, 0, len(results)),
	}
	for _, r := range results {
		out.People = append(out.People, models.PersonSummary{
			PersonID: r.Person.ID,
			Name:     r.Person.Name,
			Overall:  r.Overall,
		})
		out.Summary.Add(r.Overall)
	}

	s.metrics.ObservePass("dashboard", time.Since(start))
	s.logger.InfoContext(ctx, "readiness dashboard computed",
		"request_id", requestID(ctx),
		"as_of", asOf.ISO(),
		"people", out.Summary.Total,
		"red", out.Summary.Red,
		"yellow", out.Summary.Yellow,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Deadlines lists expired and soon-expiring items across all people, most
// overdue first.
func (s *Service) Deadlines(ctx context.Context) ([]models.DeadlineNotice, error) {
	start := time.Now()
	_, results, err := s.computeAll(ctx, "deadlines")
	if err != nil {
		return nil, err
	}

	warning := s.engine.Policy().WarningDays
	var notices []models.DeadlineNotice
	for i := range results {
		notices = append(notices, engine.Deadlines(&results[i], warning)...)
	}
	slices.SortStableFunc(notices, func(a, b models.DeadlineNotice) int {
		return cmp.Or(cmp.Compare(a.DaysLeft, b.DaysLeft), cmp.Compare(a.Key, b.Key))
	})

	s.metrics.ObservePass("deadlines", time.Since(start))
	return notices, nil
}

// ScanDeadlines computes Deadlines and publishes them when a publisher is
// configured. The notices are returned even when publishing fails.
func (s *Service) ScanDeadlines(ctx context.Context) ([]models.DeadlineNotice, error) {
	notices, err := s.Deadlines(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "deadline scan failed", "error", err)
		return nil, err
	}
	if s.publisher == nil || len(notices) == 0 {
		s.logger.InfoContext(ctx, "deadline scan completed", "notices", len(notices), "published", false)
		return notices, nil
	}

	if err := s.publisher.Publish(ctx, notices...); err != nil {
		for _, n := range notices {
			s.metrics.IncrementNotice(string(n.Kind), "failed")
		}
		s.logger.ErrorContext(ctx, "deadline notices not published",
			"notices", len(notices),
			"error", err,
		)
		return notices, translate(err, "failed to publish deadline notices")
	}
	for _, n := range notices {
		s.metrics.IncrementNotice(string(n.Kind), "published")
	}
	s.logger.InfoContext(ctx, "deadline scan completed", "notices", len(notices), "published", true)
	return notices, nil
}

// RunScanner calls ScanDeadlines every interval until ctx is done. Failures
// are logged and the next tick retries.
func (s *Service) RunScanner(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "scan interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, _ = s.ScanDeadlines(ctx)
		}
	}
}
