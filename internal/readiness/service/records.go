package service

import (
	"context"
	"fmt"
	"strings"

	"readiness/internal/readiness/models"
	dErrors "readiness/pkg/domain-errors"
)

// RecordInput is a completed training or control event. Dates are in
// dd.mm.yyyy; an empty date leaves the stored value unchanged.
type RecordInput struct {
	PersonID        models.PersonID
	Requirement     string
	Family          models.Family
	EquipmentID     *models.EquipmentID
	LastDate        string
	LastControlDate string
}

// RecordCompletion writes a compliance record, merging with the stored one
// for the same requirement and equipment. Dates after the request day are
// rejected.
func (s *Service) RecordCompletion(ctx context.Context, in RecordInput) error {
	ctx, span := s.tracer.Start(ctx, "readiness.record_completion")
	defer span.End()

	record, err := s.validateInput(ctx, in)
	if err != nil {
		return err
	}

	if _, err := s.people.FindPerson(ctx, in.PersonID); err != nil {
		return translate(err, "person not found")
	}

	existing, err := s.records.ListRecords(ctx, in.PersonID)
	if err != nil {
		return translate(err, "failed to read existing records")
	}
	for _, e := range existing {
		if e.Family != record.Family || e.Requirement != record.Requirement || !models.SameEquipment(e.EquipmentID, record.EquipmentID) {
			continue
		}
		if record.LastDate.IsZero() {
			record.LastDate = e.LastDate
		}
		if record.LastControlDate.IsZero() {
			record.LastControlDate = e.LastControlDate
		}
		break
	}

	if err := s.records.UpsertRecord(ctx, record); err != nil {
		span.RecordError(err)
		return translate(err, "failed to save record")
	}

	s.metrics.IncrementRecordWritten(string(record.Family))
	s.logger.InfoContext(ctx, "compliance record saved",
		"request_id", requestID(ctx),
		"person_id", in.PersonID.String(),
		"requirement", record.Requirement,
		"family", string(record.Family),
		"equipment_id", equipmentLabel(record.EquipmentID),
		"last_date", record.LastDate.ISO(),
		"last_control_date", record.LastControlDate.ISO(),
	)
	return nil
}

func (s *Service) validateInput(ctx context.Context, in RecordInput) (models.ComplianceRecord, error) {
	if in.PersonID.IsNil() {
		return models.ComplianceRecord{}, dErrors.New(dErrors.CodeInvalidInput, "person id is required")
	}
	requirement := strings.TrimSpace(in.Requirement)
	if requirement == "" {
		return models.ComplianceRecord{}, dErrors.New(dErrors.CodeValidation, "requirement is required")
	}
	if in.Family != models.FamilyCondition && in.Family != models.FamilySyllabus {
		return models.ComplianceRecord{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("family must be %q or %q", models.FamilyCondition, models.FamilySyllabus))
	}
	if in.Family == models.FamilyCondition && in.EquipmentID == nil {
		return models.ComplianceRecord{}, dErrors.New(dErrors.CodeValidation, "condition records require an equipment id")
	}
	if strings.TrimSpace(in.LastDate) == "" && strings.TrimSpace(in.LastControlDate) == "" {
		return models.ComplianceRecord{}, dErrors.New(dErrors.CodeValidation, "last_date or last_control_date is required")
	}

	record := models.ComplianceRecord{
		PersonID:    in.PersonID,
		Requirement: requirement,
		Family:      in.Family,
		EquipmentID: in.EquipmentID,
	}
	limit := today(ctx)
	for _, f := range []struct {
		raw string
		dst *models.Date
	}{
		{in.LastDate, &record.LastDate},
		{in.LastControlDate, &record.LastControlDate},
	} {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		d, err := models.ParseDisplay(f.raw)
		if err != nil {
			return models.ComplianceRecord{}, err
		}
		if d.After(limit) {
			return models.ComplianceRecord{}, dErrors.New(dErrors.CodeValidation, "dates cannot be in the future")
		}
		*f.dst = d
	}
	return record, nil
}

func equipmentLabel(id *models.EquipmentID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}
