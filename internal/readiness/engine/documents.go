package engine

import (
	"slices"

	"readiness/internal/readiness/models"
)

// DocumentConfig controls document resolution.
type DocumentConfig struct {
	// CrossDocument is the cross-cutting document. Its mappings never
	// activate anything; its rules feed the overlay instead.
	CrossDocument models.Document
	// Priority is the explicit order of documents. It orders the active set
	// and picks the document for rules that carry no document tag.
	Priority []models.Document
}

// Resolution is the outcome of document resolution for one person.
type Resolution struct {
	// Active lists activated documents in priority order, then lexically.
	Active []models.Document
	// Members holds each active document's equipment in input order.
	Members map[models.Document][]models.EquipmentID

	priority []models.Document
}

func (r Resolution) IsActive(doc models.Document) bool {
	return len(r.Members[doc]) > 0
}

// DocumentForUntagged returns the first active document in configured priority
// order, or "" when none of the prioritised documents is active.
func (r Resolution) DocumentForUntagged() models.Document {
	for _, doc := range r.priority {
		if r.IsActive(doc) {
			return doc
		}
	}
	return ""
}

// Equipment returns every equipment item that belongs to some active
// document, deduplicated, in active-document order.
func (r Resolution) Equipment() []models.EquipmentID {
	var out []models.EquipmentID
	seen := make(map[models.EquipmentID]bool)
	for _, doc := range r.Active {
		for _, id := range r.Members[doc] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

type equipmentMapping struct {
	docs      []models.Document
	primaries []models.Document
}

// ResolveDocuments assigns the person's equipment to curriculum documents in
// two passes. The first pass handles equipment with a single document or a
// single primary mapping; those activate their document. The second pass
// attaches the remaining, dependent equipment to every already-active
// document it maps to. Dependent equipment never activates a document, and
// equipment without mappings is ignored.
func ResolveDocuments(equipment []models.EquipmentID, mappings []models.DocumentMapping, cfg DocumentConfig) Resolution {
	byEquipment := make(map[models.EquipmentID]*equipmentMapping)
	for _, m := range mappings {
		if m.Document == "" || m.Document == cfg.CrossDocument {
			continue
		}
		em := byEquipment[m.EquipmentID]
		if em == nil {
			em = &equipmentMapping{}
			byEquipment[m.EquipmentID] = em
		}
		if !slices.Contains(em.docs, m.Document) {
			em.docs = append(em.docs, m.Document)
		}
		if m.IsPrimary && !slices.Contains(em.primaries, m.Document) {
			em.primaries = append(em.primaries, m.Document)
		}
	}

	res := Resolution{
		Members:  make(map[models.Document][]models.EquipmentID),
		priority: append([]models.Document(nil), cfg.Priority...),
	}
	attach := func(doc models.Document, id models.EquipmentID) {
		if !slices.Contains(res.Members[doc], id) {
			res.Members[doc] = append(res.Members[doc], id)
		}
	}

	var dependents []models.EquipmentID
	seen := make(map[models.EquipmentID]bool)
	for _, id := range equipment {
		if seen[id] {
			continue
		}
		seen[id] = true
		em := byEquipment[id]
		switch {
		case em == nil:
			// unmapped equipment has no syllabus
		case len(em.docs) == 1:
			attach(em.docs[0], id)
		case len(em.primaries) == 1:
			attach(em.primaries[0], id)
		default:
			dependents = append(dependents, id)
		}
	}

	// Only documents activated by the first pass accept dependents.
	activated := make(map[models.Document]bool, len(res.Members))
	for doc := range res.Members {
		activated[doc] = true
	}
	for _, id := range dependents {
		for _, doc := range byEquipment[id].docs {
			if activated[doc] {
				attach(doc, id)
			}
		}
	}

	res.Active = orderDocuments(res.Members, cfg.Priority)
	return res
}

func orderDocuments(members map[models.Document][]models.EquipmentID, priority []models.Document) []models.Document {
	var ordered []models.Document
	for _, doc := range priority {
		if len(members[doc]) > 0 && !slices.Contains(ordered, doc) {
			ordered = append(ordered, doc)
		}
	}
	var rest []models.Document
	for doc, ids := range members {
		if len(ids) > 0 && !slices.Contains(ordered, doc) {
			rest = append(rest, doc)
		}
	}
	slices.Sort(rest)
	return append(ordered, rest...)
}
