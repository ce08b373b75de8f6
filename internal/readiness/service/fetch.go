package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"readiness/internal/readiness/models"
	dErrors "readiness/pkg/domain-errors"
	"readiness/pkg/platform/sentinel"
)

// loadSnapshot fetches the configuration tables in parallel. All three are
// required: a pass against partial configuration would silently gray out
// whole sections.
func (s *Service) loadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "readiness.load_snapshot")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	snap := &models.Snapshot{}

	g.Go(func() error {
		start := time.Now()
		rules, err := s.config.LoadRules(ctx)
		s.metrics.ObserveFetch("rules", time.Since(start))
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		snap.Rules = rules
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		mappings, err := s.config.LoadMappings(ctx)
		s.metrics.ObserveFetch("mappings", time.Since(start))
		if err != nil {
			return fmt.Errorf("load mappings: %w", err)
		}
		snap.Mappings = mappings
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		equipment, err := s.config.LoadEquipment(ctx)
		s.metrics.ObserveFetch("equipment", time.Since(start))
		if err != nil {
			return fmt.Errorf("load equipment: %w", err)
		}
		snap.Equipment = equipment
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, translate(err, "failed to load readiness configuration")
	}
	return snap, nil
}

// fetchRecords gathers a person's records in parallel. A failed fetch is
// logged and treated as no input, so the affected items render gray instead
// of failing the whole pass.
func (s *Service) fetchRecords(ctx context.Context, id models.PersonID) models.Records {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var (
		g   errgroup.Group
		out models.Records
	)

	g.Go(func() error {
		start := time.Now()
		records, err := s.records.ListRecords(ctx, id)
		s.metrics.ObserveFetch("records", time.Since(start))
		if err != nil {
			s.warnFetch(ctx, "records", id, err)
			return nil
		}
		out.Compliance = records
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		certs, err := s.records.ListCertifications(ctx, id)
		s.metrics.ObserveFetch("certifications", time.Since(start))
		if err != nil {
			s.warnFetch(ctx, "certifications", id, err)
			return nil
		}
		out.Certifications = certs
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		checks, err := s.records.ListAnnualChecks(ctx, id)
		s.metrics.ObserveFetch("annual_checks", time.Since(start))
		if err != nil {
			s.warnFetch(ctx, "annual_checks", id, err)
			return nil
		}
		out.AnnualChecks = checks
		return nil
	})

	_ = g.Wait()
	return out
}

func (s *Service) warnFetch(ctx context.Context, source string, id models.PersonID, err error) {
	s.logger.WarnContext(ctx, "readiness input fetch failed, treating as empty",
		"request_id", requestID(ctx),
		"source", source,
		"person_id", id.String(),
		"error", err,
	)
}

// translate maps store and context failures to domain errors.
func translate(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
