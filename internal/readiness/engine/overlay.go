package engine

import (
	"slices"

	"readiness/internal/readiness/models"
)

// CrossConfig filters requirements that exist only in the cross-cutting
// document.
type CrossConfig struct {
	// SuppressedKeys are never shown as cross-only requirements.
	SuppressedKeys []string
	// DocumentCategories lists the equipment categories each document covers.
	// A cross-only rule scoped to a category is shown only when some active
	// document covers that category.
	DocumentCategories map[models.Document][]string
}

// ApplyOverlay attaches an informational deadline computed with the
// cross-cutting rule's duration when it differs from primaryDays. item's own
// expiry and color are left as they are.
func ApplyOverlay(item models.ExpiryResult, record models.ComplianceRecord, primaryDays int, cross models.RuleEntry, coefficient float64, today models.Date, th Thresholds) models.ExpiryResult {
	crossDays := EffectiveDays(cross, coefficient)
	if crossDays <= 0 || crossDays == primaryDays {
		return item
	}
	secondary := ComputeExpiry(record, crossDays, today, th)
	item.Overlay = &models.Overlay{
		Document:   cross.Document,
		Days:       crossDays,
		ExpiryDate: secondary.ExpiryDate,
		Color:      secondary.Color,
	}
	return item
}

// CrossOnlyRequirements returns the cross-document rules that have no
// counterpart among primaryKeys, dropping suppressed keys and rules scoped to
// a category no active document covers.
func CrossOnlyRequirements(crossRules []models.RuleEntry, primaryKeys map[string]bool, res Resolution, cfg CrossConfig) []models.RuleEntry {
	categories := activeCategories(res, cfg.DocumentCategories)
	var out []models.RuleEntry
	for _, r := range crossRules {
		key := r.Key()
		if primaryKeys[key] || slices.Contains(cfg.SuppressedKeys, key) {
			continue
		}
		if r.Category != "" && !categories[r.Category] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func activeCategories(res Resolution, byDocument map[models.Document][]string) map[string]bool {
	out := make(map[string]bool)
	for _, doc := range res.Active {
		for _, c := range byDocument[doc] {
			out[c] = true
		}
	}
	return out
}

// categoryEquipment returns the equipment of active documents covering
// category, or all resolved equipment when category is empty.
func categoryEquipment(res Resolution, byDocument map[models.Document][]string, category string) []models.EquipmentID {
	if category == "" {
		return res.Equipment()
	}
	var out []models.EquipmentID
	for _, doc := range res.Active {
		if !slices.Contains(byDocument[doc], category) {
			continue
		}
		for _, id := range res.Members[doc] {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}
