package engine

import "readiness/internal/readiness/models"

// ResolveDependencies colors composite sections from their prerequisites.
// deps maps a composite's key to the keys of the sections it depends on.
//
// For each composite item, matched to prerequisite items by equipment:
//   - if the composite lists no prerequisites, or any prerequisite section is
//     missing entirely, the item is gray;
//   - otherwise the item takes the worst prerequisite color, where a missing
//     or gray prerequisite item counts as red.
//
// A prerequisite item is taken from the composite's own document when that
// document has one for the equipment, otherwise from any document that does.
// Prerequisites are never composites themselves, so a single pass suffices.
// The input is not modified.
func ResolveDependencies(sections []models.Section, deps map[string][]string) []models.Section {
	out := make([]models.Section, len(sections))
	copy(out, sections)
	if len(deps) == 0 {
		return out
	}

	for i := range out {
		prereqKeys, ok := deps[out[i].Key()]
		if !ok {
			continue
		}
		out[i].Composite = true

		complete := len(prereqKeys) > 0
		for _, key := range prereqKeys {
			if !hasSection(sections, key) {
				complete = false
				break
			}
		}

		items := make([]models.ExpiryResult, len(out[i].Items))
		for j, item := range out[i].Items {
			item.ExpiryDate = models.Date{}
			item.Overlay = nil
			if complete {
				item.Color = prerequisiteColor(sections, prereqKeys, out[i].Document, item.EquipmentID)
			} else {
				item.Color = Gray
			}
			items[j] = item
		}
		out[i].Items = items
	}
	return out
}

func prerequisiteColor(sections []models.Section, keys []string, document models.Document, equipment *models.EquipmentID) Color {
	worst := Green
	for _, key := range keys {
		c := Red
		if item, ok := prerequisiteItem(sections, key, document, equipment); ok {
			c = item.Color
		}
		if c == Gray {
			c = Red
		}
		worst = Aggregate(worst, c)
	}
	return worst
}

func prerequisiteItem(sections []models.Section, key string, document models.Document, equipment *models.EquipmentID) (models.ExpiryResult, bool) {
	for _, ownDocument := range []bool{true, false} {
		for _, s := range sections {
			if s.Key() != key || (ownDocument && s.Document != document) {
				continue
			}
			for _, item := range s.Items {
				if item.MatchesEquipment(equipment) {
					return item, true
				}
			}
		}
	}
	return models.ExpiryResult{}, false
}

func hasSection(sections []models.Section, key string) bool {
	for _, s := range sections {
		if s.Key() == key {
			return true
		}
	}
	return false
}
