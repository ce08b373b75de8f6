package engine

import (
	"strings"

	"readiness/internal/readiness/models"
)

// Deadlines lists the expired and soon-expiring items of r as of r.AsOf.
// Items without an expiry date (gray or composite) never produce a notice.
func Deadlines(r *models.PersonReadiness, warningDays int) []models.DeadlineNotice {
	var out []models.DeadlineNotice
	add := func(family models.Family, displayName string, item models.ExpiryResult) {
		if item.ExpiryDate.IsZero() {
			return
		}
		days := r.AsOf.DaysUntil(item.ExpiryDate)
		var kind models.DeadlineKind
		switch {
		case days <= 0:
			kind = models.DeadlineExpired
		case days <= warningDays:
			kind = models.DeadlineWarning
		default:
			return
		}
		out = append(out, models.DeadlineNotice{
			Key:           NoticeKey(r.Person.ID, item.Requirement, item.EquipmentID, item.ExpiryDate),
			Kind:          kind,
			PersonID:      r.Person.ID,
			PersonName:    r.Person.Name,
			Family:        family,
			Requirement:   item.Requirement,
			DisplayName:   displayName,
			EquipmentID:   item.EquipmentID,
			EquipmentName: item.EquipmentName,
			Deadline:      item.ExpiryDate,
			DaysLeft:      days,
		})
	}

	for _, group := range [][]models.Section{r.Conditions, r.Syllabus, r.CrossOnly, r.Certifications, r.AnnualChecks} {
		for _, s := range group {
			for _, item := range s.Items {
				add(s.Family, s.DisplayName, item)
			}
		}
	}
	add(models.FamilyCertification, r.Medical.Full.Requirement, r.Medical.Full)
	add(models.FamilyCertification, r.Medical.Interim.Requirement, r.Medical.Interim)
	return out
}

// NoticeKey identifies a notice within one expiry cycle. A new record moves
// the deadline and therefore produces a new key.
func NoticeKey(person models.PersonID, requirement string, equipment *models.EquipmentID, deadline models.Date) string {
	eq := "-"
	if equipment != nil {
		eq = equipment.String()
	}
	return strings.Join([]string{person.String(), requirement, eq, deadline.ISO()}, "|")
}
