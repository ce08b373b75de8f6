package engine_test

import (
	"time"

	"readiness/internal/readiness/models"
)

var today = models.NewDate(2025, time.June, 1)

func tier(n int) *int { return &n }

func eqRef(id models.EquipmentID) *models.EquipmentID { return models.EquipmentRef(id) }

func record(requirement string, family models.Family, eq *models.EquipmentID, last, control models.Date) models.ComplianceRecord {
	return models.ComplianceRecord{
		Requirement:     requirement,
		Family:          family,
		EquipmentID:     eq,
		LastDate:        last,
		LastControlDate: control,
	}
}

func section(key string, items ...models.ExpiryResult) models.Section {
	return models.Section{Requirement: key, NormalizedKey: key, Family: models.FamilySyllabus, Items: items}
}

func inDocument(doc models.Document, s models.Section) models.Section {
	s.Document = doc
	return s
}

func item(eq models.EquipmentID, c models.Color) models.ExpiryResult {
	return models.ExpiryResult{EquipmentID: eqRef(eq), Color: c}
}
