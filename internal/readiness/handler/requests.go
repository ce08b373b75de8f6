package handler

import (
	"strings"

	"readiness/internal/readiness/models"
	"readiness/internal/readiness/service"
	dErrors "readiness/pkg/domain-errors"
)

const (
	maxRequirementLength = 200
	maxDateLength        = 10
)

// RecordRequest is the HTTP request body for PUT
// /readiness/people/{personID}/records.
type RecordRequest struct {
	Requirement     string `json:"requirement"`
	Family          string `json:"family"`
	EquipmentID     *int64 `json:"equipment_id,omitempty"`
	LastDate        string `json:"last_date,omitempty"`
	LastControlDate string `json:"last_control_date,omitempty"`
}

// Validate checks sizes and normalizes the request. Semantic checks (date
// format, family rules, future dates) are the service's.
func (r *RecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	if len(r.Requirement) > maxRequirementLength {
		return dErrors.New(dErrors.CodeValidation, "requirement must be at most 200 characters")
	}
	if len(strings.TrimSpace(r.LastDate)) > maxDateLength || len(strings.TrimSpace(r.LastControlDate)) > maxDateLength {
		return dErrors.New(dErrors.CodeValidation, "date must be in dd.mm.yyyy format")
	}

	r.Requirement = strings.TrimSpace(r.Requirement)
	if r.Requirement == "" {
		return dErrors.New(dErrors.CodeValidation, "requirement is required")
	}
	r.Family = strings.ToLower(strings.TrimSpace(r.Family))
	if r.Family == "" {
		return dErrors.New(dErrors.CodeValidation, "family is required")
	}
	if r.EquipmentID != nil && *r.EquipmentID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "equipment_id must be positive")
	}
	r.LastDate = strings.TrimSpace(r.LastDate)
	r.LastControlDate = strings.TrimSpace(r.LastControlDate)
	return nil
}

// ToInput converts a validated request to the service input.
func (r *RecordRequest) ToInput(personID models.PersonID) service.RecordInput {
	in := service.RecordInput{
		PersonID:        personID,
		Requirement:     r.Requirement,
		Family:          models.Family(r.Family),
		LastDate:        r.LastDate,
		LastControlDate: r.LastControlDate,
	}
	if r.EquipmentID != nil {
		in.EquipmentID = models.EquipmentRef(models.EquipmentID(*r.EquipmentID))
	}
	return in
}
