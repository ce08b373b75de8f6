package engine

import (
	"slices"

	"readiness/internal/readiness/models"
)

// RecordKind describes a certification or annual-check kind.
type RecordKind struct {
	Kind        string
	DisplayName string
	// PerEquipment repeats the result for every qualified equipment item.
	PerEquipment bool
	// Months is used to derive an expiry when a record has none stored.
	Months int
}

func (k RecordKind) label() string {
	if k.DisplayName != "" {
		return k.DisplayName
	}
	return k.Kind
}

// MedicalPolicy describes the alternating full and interim medical exams.
type MedicalPolicy struct {
	FullKind      string
	FullMonths    int
	InterimKind   string
	InterimMonths int
}

// Medical computes both exams of the medical pair from their latest records
// and decides which one is due next. The exam taken last determines the
// next: after an interim exam the full one is due when the interim lapses,
// and the other way round.
func Medical(records []models.CertificationRecord, mp MedicalPolicy, today models.Date, th Thresholds) models.MedicalStatus {
	full, hasFull := latestCertification(records, mp.FullKind)
	interim, hasInterim := latestCertification(records, mp.InterimKind)

	status := models.MedicalStatus{
		Full:    models.ExpiryResult{Requirement: mp.FullKind},
		Interim: models.ExpiryResult{Requirement: mp.InterimKind},
	}
	if hasFull {
		status.Full = datedResult(mp.FullKind, full.Date, full.Date.AddMonths(mp.FullMonths), today, th)
	}
	if hasInterim {
		status.Interim = datedResult(mp.InterimKind, interim.Date, interim.Date.AddMonths(mp.InterimMonths), today, th)
	}

	switch {
	case hasFull && hasInterim && !interim.Date.Before(full.Date):
		status.NextKind, status.NextDate = mp.FullKind, status.Interim.ExpiryDate
	case hasFull && hasInterim:
		status.NextKind, status.NextDate = mp.InterimKind, status.Full.ExpiryDate
	case hasFull:
		status.NextKind, status.NextDate = mp.InterimKind, status.Full.ExpiryDate
	case hasInterim:
		status.NextKind, status.NextDate = mp.FullKind, status.Interim.ExpiryDate
	}
	return status
}

// Certifications builds one section per configured kind from the latest record
// of that kind. Kinds flagged PerEquipment are repeated for every equipment
// item; a kind with no record yields gray results.
func Certifications(records []models.CertificationRecord, kinds []RecordKind, equipment []models.Equipment, today models.Date, th Thresholds) []models.Section {
	sections := make([]models.Section, 0, len(kinds))
	for _, kind := range kinds {
		result := models.ExpiryResult{Requirement: kind.Kind}
		if rec, ok := latestCertification(records, kind.Kind); ok {
			result = datedResult(kind.Kind, rec.Date, expiryOrMonths(rec.Expiry, rec.Date, kind.Months), today, th)
		}

		section := models.Section{
			Requirement: kind.Kind,
			DisplayName: kind.label(),
			Family:      models.FamilyCertification,
		}
		if kind.PerEquipment {
			for _, eq := range equipment {
				item := result
				item.EquipmentID = models.EquipmentRef(eq.ID)
				item.EquipmentName = eq.Name
				section.Items = append(section.Items, item)
			}
		} else {
			section.Items = []models.ExpiryResult{result}
		}
		sections = append(sections, section)
	}
	return sections
}

// AnnualChecks builds one singleton section per check kind from the latest
// record. Configured kinds come first in configured order, followed by any
// other recorded kinds in lexical order.
func AnnualChecks(records []models.AnnualCheckRecord, kinds []RecordKind, defaultMonths int, today models.Date, th Thresholds) []models.Section {
	latest := make(map[string]models.AnnualCheckRecord)
	for _, rec := range records {
		if rec.Kind == "" {
			continue
		}
		if cur, ok := latest[rec.Kind]; !ok || rec.Date.After(cur.Date) {
			latest[rec.Kind] = rec
		}
	}

	ordered := append([]RecordKind(nil), kinds...)
	var extra []string
	for kind := range latest {
		if !slices.ContainsFunc(kinds, func(k RecordKind) bool { return k.Kind == kind }) {
			extra = append(extra, kind)
		}
	}
	slices.Sort(extra)
	for _, kind := range extra {
		ordered = append(ordered, RecordKind{Kind: kind})
	}

	sections := make([]models.Section, 0, len(ordered))
	for _, kind := range ordered {
		months := kind.Months
		if months == 0 {
			months = defaultMonths
		}
		result := models.ExpiryResult{Requirement: kind.Kind}
		if rec, ok := latest[kind.Kind]; ok {
			result = datedResult(kind.Kind, rec.Date, expiryOrMonths(rec.Expiry, rec.Date, months), today, th)
		}
		sections = append(sections, models.Section{
			Requirement: kind.Kind,
			DisplayName: kind.label(),
			Family:      models.FamilyAnnualCheck,
			Items:       []models.ExpiryResult{result},
		})
	}
	return sections
}

func latestCertification(records []models.CertificationRecord, kind string) (models.CertificationRecord, bool) {
	var (
		latest models.CertificationRecord
		found  bool
	)
	for _, rec := range records {
		if rec.Kind != kind || (rec.Date.IsZero() && rec.Expiry.IsZero()) {
			continue
		}
		if !found || rec.Date.After(latest.Date) {
			latest, found = rec, true
		}
	}
	return latest, found
}

func expiryOrMonths(stored, date models.Date, months int) models.Date {
	if !stored.IsZero() || months <= 0 {
		return stored
	}
	return date.AddMonths(months)
}

func datedResult(requirement string, date, expiry, today models.Date, th Thresholds) models.ExpiryResult {
	return models.ExpiryResult{
		Requirement: requirement,
		LastDate:    date,
		ExpiryDate:  expiry,
		Color:       ColorFor(expiry, today, th.WarningDays),
	}
}
