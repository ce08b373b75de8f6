package engine

import "readiness/internal/readiness/models"

type recordKey struct {
	family      models.Family
	requirement string
	equipment   models.EquipmentID
	scoped      bool
}

// recordIndex looks up compliance records by requirement and equipment.
// Duplicate rows keep the most recent one.
type recordIndex struct {
	records map[recordKey]models.ComplianceRecord
	keys    map[models.Family]map[string]bool
}

func newRecordIndex(records []models.ComplianceRecord) *recordIndex {
	idx := &recordIndex{
		records: make(map[recordKey]models.ComplianceRecord, len(records)),
		keys:    make(map[models.Family]map[string]bool),
	}
	for _, rec := range records {
		if rec.Requirement == "" {
			continue
		}
		k := recordKey{family: rec.Family, requirement: rec.Requirement}
		if rec.EquipmentID != nil {
			k.equipment, k.scoped = *rec.EquipmentID, true
		}
		if cur, ok := idx.records[k]; ok && !newer(rec, cur) {
			continue
		}
		idx.records[k] = rec
		if !rec.LastDate.IsZero() || !rec.LastControlDate.IsZero() {
			if idx.keys[rec.Family] == nil {
				idx.keys[rec.Family] = make(map[string]bool)
			}
			idx.keys[rec.Family][rec.Requirement] = true
		}
	}
	return idx
}

func newer(a, b models.ComplianceRecord) bool {
	if !a.LastDate.Equal(b.LastDate) {
		return a.LastDate.After(b.LastDate)
	}
	return a.LastControlDate.After(b.LastControlDate)
}

// find returns the record for equipment, falling back to the record without
// equipment when fallback is set. The returned record is always tagged with
// the requested equipment.
func (idx *recordIndex) find(family models.Family, requirement string, equipment models.EquipmentID, fallback bool) models.ComplianceRecord {
	rec, ok := idx.records[recordKey{family: family, requirement: requirement, equipment: equipment, scoped: true}]
	if !ok && fallback {
		rec, ok = idx.records[recordKey{family: family, requirement: requirement}]
	}
	if !ok {
		rec = models.ComplianceRecord{Family: family, Requirement: requirement}
	}
	rec.EquipmentID = models.EquipmentRef(equipment)
	return rec
}

func (idx *recordIndex) hasAnyDate(family models.Family, requirement string) bool {
	return idx.keys[family][requirement]
}

// equipmentOfRecords lists the distinct equipment of family's records in input order.
func equipmentOfRecords(records []models.ComplianceRecord, family models.Family) []models.EquipmentID {
	var out []models.EquipmentID
	seen := make(map[models.EquipmentID]bool)
	for _, rec := range records {
		if rec.Family != family || rec.EquipmentID == nil || seen[*rec.EquipmentID] {
			continue
		}
		seen[*rec.EquipmentID] = true
		out = append(out, *rec.EquipmentID)
	}
	return out
}
