package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"readiness/internal/readiness/models"
	"readiness/pkg/requestcontext"
)

// Evaluate computes the readiness of one person as of the request day.
func (s *Service) Evaluate(ctx context.Context, id models.PersonID) (*models.PersonReadiness, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "readiness.evaluate")
	span.SetAttributes(attribute.String("person_id", id.String()))
	defer span.End()

	today := today(ctx)

	var (
		person  *models.Person
		snap    *models.Snapshot
		records models.Records
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		fetchStart := time.Now()
		p, err := s.people.FindPerson(fetchCtx, id)
		s.metrics.ObserveFetch("person", time.Since(fetchStart))
		if err != nil {
			return translate(err, "person not found")
		}
		person = p
		return nil
	})
	g.Go(func() error {
		var err error
		snap, err = s.loadSnapshot(gctx)
		return err
	})
	g.Go(func() error {
		records = s.fetchRecords(gctx, id)
		if err := gctx.Err(); err != nil {
			return translate(err, "evaluation interrupted")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluate failed")
		s.logger.ErrorContext(ctx, "readiness evaluation failed",
			"request_id", requestID(ctx),
			"person_id", id.String(),
			"error", err,
		)
		return nil, err
	}

	result := s.engine.NewPass(snap, today).Compute(*person, records)

	s.metrics.IncrementOutcome(result.Overall.String())
	s.metrics.ObservePass("evaluate", time.Since(start))
	span.SetAttributes(attribute.String("overall", result.Overall.String()))
	s.logger.InfoContext(ctx, "readiness evaluated",
		"request_id", requestID(ctx),
		"person_id", id.String(),
		"as_of", today.ISO(),
		"overall", result.Overall.String(),
		"documents", len(result.Documents),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &result, nil
}

func today(ctx context.Context) models.Date {
	return models.DateOf(requestcontext.Now(ctx))
}

func requestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
