package engine

import "readiness/internal/readiness/models"

// Thresholds holds the fixed windows of the expiry calculation.
type Thresholds struct {
	// ControlExtensionDays is the extra time a control event grants.
	ControlExtensionDays int
	// WarningDays is the window before expiry that renders yellow.
	WarningDays int
}

func DefaultThresholds() Thresholds {
	return Thresholds{ControlExtensionDays: 10, WarningDays: 15}
}

// ColorFor colors an expiry date relative to today. Zero remaining days is
// already expired.
func ColorFor(expiry, today models.Date, warningDays int) Color {
	if expiry.IsZero() {
		return Gray
	}
	remaining := today.DaysUntil(expiry)
	switch {
	case remaining <= 0:
		return Red
	case remaining <= warningDays:
		return Yellow
	default:
		return Green
	}
}

// ComputeExpiry derives the effective expiry of record from its training
// track (last date plus allowedDays) and its control track (last control date
// plus the control extension). The later of the two wins. A missing or zero
// allowed duration yields gray whatever the dates say.
func ComputeExpiry(record models.ComplianceRecord, allowedDays int, today models.Date, th Thresholds) models.ExpiryResult {
	result := models.ExpiryResult{
		Requirement:     record.Requirement,
		EquipmentID:     record.EquipmentID,
		LastDate:        record.LastDate,
		LastControlDate: record.LastControlDate,
	}
	if allowedDays <= 0 {
		return result
	}

	var training, control models.Date
	if !record.LastDate.IsZero() {
		training = record.LastDate.AddDays(allowedDays)
	}
	if !record.LastControlDate.IsZero() {
		control = record.LastControlDate.AddDays(th.ControlExtensionDays)
	}

	result.ExpiryDate = models.LaterDate(training, control)
	result.Color = ColorFor(result.ExpiryDate, today, th.WarningDays)
	return result
}
