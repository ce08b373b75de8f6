package engine

import (
	"cmp"
	"slices"

	"readiness/internal/readiness/models"
)

// Policy is the configuration of the engine that is not part of the rule
// table itself.
type Policy struct {
	Thresholds
	Documents DocumentConfig
	Cross     CrossConfig
	// Dependencies maps a composite syllabus key to its prerequisite keys.
	Dependencies map[string][]string
	// ConditionOrder fixes the order of condition requirements. Condition
	// rules not listed follow in table order.
	ConditionOrder []string
	Medical        MedicalPolicy
	Certifications []RecordKind
	AnnualChecks   []RecordKind
	// AnnualCheckMonths derives an expiry for checks stored without one.
	AnnualCheckMonths int
}

// Engine computes readiness. It holds only immutable policy and is safe for
// concurrent use.
type Engine struct {
	policy Policy
}

func New(policy Policy) *Engine {
	if policy.Thresholds == (Thresholds{}) {
		policy.Thresholds = DefaultThresholds()
	}
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Compute runs a single-person pass.
func (e *Engine) Compute(snap *models.Snapshot, person models.Person, records models.Records, today models.Date) models.PersonReadiness {
	return e.NewPass(snap, today).Compute(person, records)
}

// Pass is one computation pass over a configuration snapshot. It is read-only
// after construction, so one pass may compute many people concurrently.
type Pass struct {
	policy    Policy
	today     models.Date
	table     *RuleTable
	mappings  []models.DocumentMapping
	equipment map[models.EquipmentID]models.Equipment
}

func (e *Engine) NewPass(snap *models.Snapshot, today models.Date) *Pass {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	return &Pass{
		policy:    e.policy,
		today:     today,
		table:     NewRuleTable(snap.Rules),
		mappings:  append([]models.DocumentMapping(nil), snap.Mappings...),
		equipment: snap.EquipmentIndex(),
	}
}

func (p *Pass) Today() models.Date {
	return p.today
}

// Compute derives the readiness of person from records. Missing rules,
// records or dates degrade the affected items to gray; nothing fails the pass.
func (p *Pass) Compute(person models.Person, records models.Records) models.PersonReadiness {
	idx := newRecordIndex(records.Compliance)

	equipment := person.Equipment
	if len(equipment) == 0 {
		equipment = equipmentOfRecords(records.Compliance, models.FamilyCondition)
	}
	person.Equipment = equipment

	res := ResolveDocuments(equipment, p.mappings, p.policy.Documents)

	out := models.PersonReadiness{
		Person:    person,
		AsOf:      p.today,
		Documents: res.Active,
	}
	out.Conditions = p.conditions(person, equipment, idx)
	out.Syllabus = ResolveDependencies(p.syllabus(person, res, idx), p.policy.Dependencies)
	out.CrossOnly = p.crossOnly(person, res, out.Syllabus, idx)
	out.Certifications = Certifications(records.Certifications, p.policy.Certifications, p.describe(equipment), p.today, p.policy.Thresholds)
	out.AnnualChecks = AnnualChecks(records.AnnualChecks, p.policy.AnnualChecks, p.policy.AnnualCheckMonths, p.today, p.policy.Thresholds)
	out.Medical = Medical(records.Certifications, p.policy.Medical, p.today, p.policy.Thresholds)

	colors := []Color{out.Medical.Full.Color, out.Medical.Interim.Color}
	for _, group := range [][]models.Section{out.Conditions, out.Syllabus, out.CrossOnly, out.Certifications, out.AnnualChecks} {
		colors = append(colors, itemColors(group)...)
	}
	out.Overall = Aggregate(colors...)
	return out
}

func (p *Pass) conditions(person models.Person, equipment []models.EquipmentID, idx *recordIndex) []models.Section {
	requirements := append([]string(nil), p.policy.ConditionOrder...)
	for _, r := range p.table.ForTier(models.FamilyCondition, person.Tier) {
		if !slices.Contains(requirements, r.Requirement) {
			requirements = append(requirements, r.Requirement)
		}
	}

	sections := make([]models.Section, 0, len(requirements))
	for _, req := range requirements {
		rule, found := p.table.Lookup(models.FamilyCondition, req, person.Tier)
		days := 0
		if found {
			days = EffectiveDays(rule, person.Coefficient)
		}
		section := models.Section{
			Requirement: req,
			DisplayName: req,
			Family:      models.FamilyCondition,
			Duration:    days,
		}
		if found {
			section.DisplayName = rule.Label()
			section.SortOrder = rule.SortOrder
		}
		for _, eq := range equipment {
			item := ComputeExpiry(idx.find(models.FamilyCondition, req, eq, false), days, p.today, p.policy.Thresholds)
			item.EquipmentName = p.equipmentName(eq)
			section.Items = append(section.Items, item)
		}
		sections = append(sections, section)
	}
	return sections
}

func (p *Pass) syllabus(person models.Person, res Resolution, idx *recordIndex) []models.Section {
	cross := p.crossRules(person.Tier)

	byDocument := make(map[models.Document][]models.RuleEntry)
	for _, r := range p.table.ForTier(models.FamilySyllabus, person.Tier) {
		if r.Document != "" && r.Document == p.policy.Documents.CrossDocument {
			continue
		}
		doc := r.Document
		if doc == "" {
			doc = res.DocumentForUntagged()
		}
		if doc == "" || !res.IsActive(doc) {
			continue
		}
		r.Document = doc
		byDocument[doc] = append(byDocument[doc], r)
	}

	var sections []models.Section
	for _, doc := range res.Active {
		rules := byDocument[doc]
		p.sortSyllabus(rules, person.Coefficient, idx)
		for _, rule := range rules {
			sections = append(sections, p.syllabusSection(rule, res.Members[doc], person.Coefficient, cross, idx))
		}
	}
	return sections
}

func (p *Pass) syllabusSection(rule models.RuleEntry, equipment []models.EquipmentID, coefficient float64, cross map[string]models.RuleEntry, idx *recordIndex) models.Section {
	key := rule.Key()
	days := EffectiveDays(rule, coefficient)
	_, composite := p.policy.Dependencies[key]

	section := models.Section{
		Requirement:   rule.Requirement,
		DisplayName:   displayName(rule),
		Family:        models.FamilySyllabus,
		Document:      rule.Document,
		NormalizedKey: rule.NormalizedKey,
		Duration:      days / DaysPerMonth,
		SortOrder:     rule.SortOrder,
		Composite:     composite,
	}
	for _, eq := range equipment {
		var item models.ExpiryResult
		if composite {
			item = models.ExpiryResult{Requirement: key, EquipmentID: models.EquipmentRef(eq)}
		} else {
			rec := idx.find(models.FamilySyllabus, key, eq, true)
			item = ComputeExpiry(rec, days, p.today, p.policy.Thresholds)
			if crossRule, ok := cross[key]; ok {
				item = ApplyOverlay(item, rec, days, crossRule, coefficient, p.today, p.policy.Thresholds)
			}
		}
		item.EquipmentName = p.equipmentName(eq)
		section.Items = append(section.Items, item)
	}
	return section
}

// sortSyllabus orders rules by explicit sort order first, then rules with a
// recorded date, then shorter durations.
func (p *Pass) sortSyllabus(rules []models.RuleEntry, coefficient float64, idx *recordIndex) {
	slices.SortStableFunc(rules, func(a, b models.RuleEntry) int {
		switch {
		case a.SortOrder != nil && b.SortOrder != nil:
			return cmp.Compare(*a.SortOrder, *b.SortOrder)
		case a.SortOrder != nil:
			return -1
		case b.SortOrder != nil:
			return 1
		}
		aDated := idx.hasAnyDate(models.FamilySyllabus, a.Key())
		bDated := idx.hasAnyDate(models.FamilySyllabus, b.Key())
		if aDated != bDated {
			if aDated {
				return -1
			}
			return 1
		}
		return cmp.Compare(EffectiveDays(a, coefficient), EffectiveDays(b, coefficient))
	})
}

func (p *Pass) crossRules(tier int) map[string]models.RuleEntry {
	out := make(map[string]models.RuleEntry)
	doc := p.policy.Documents.CrossDocument
	if doc == "" {
		return out
	}
	for _, r := range p.table.ForTier(models.FamilySyllabus, tier) {
		if r.Document == doc {
			if _, dup := out[r.Key()]; !dup {
				out[r.Key()] = r
			}
		}
	}
	return out
}

func (p *Pass) crossOnly(person models.Person, res Resolution, primary []models.Section, idx *recordIndex) []models.Section {
	doc := p.policy.Documents.CrossDocument
	if doc == "" || len(res.Active) == 0 {
		return nil
	}
	primaryKeys := make(map[string]bool, len(primary))
	for _, s := range primary {
		primaryKeys[s.Key()] = true
	}
	var crossRules []models.RuleEntry
	for _, r := range p.table.ForTier(models.FamilySyllabus, person.Tier) {
		if r.Document == doc {
			crossRules = append(crossRules, r)
		}
	}
	rules := CrossOnlyRequirements(crossRules, primaryKeys, res, p.policy.Cross)
	p.sortSyllabus(rules, person.Coefficient, idx)

	sections := make([]models.Section, 0, len(rules))
	for _, rule := range rules {
		equipment := categoryEquipment(res, p.policy.Cross.DocumentCategories, rule.Category)
		sections = append(sections, p.syllabusSection(rule, equipment, person.Coefficient, nil, idx))
	}
	return sections
}

func (p *Pass) describe(ids []models.EquipmentID) []models.Equipment {
	out := make([]models.Equipment, 0, len(ids))
	for _, id := range ids {
		eq, ok := p.equipment[id]
		if !ok {
			eq = models.Equipment{ID: id, Name: id.String()}
		}
		out = append(out, eq)
	}
	return out
}

func (p *Pass) equipmentName(id models.EquipmentID) string {
	if eq, ok := p.equipment[id]; ok {
		return eq.Name
	}
	return id.String()
}

func displayName(rule models.RuleEntry) string {
	name := rule.Label()
	if rule.TimeOfDay != "" {
		name += " (" + rule.TimeOfDay + ")"
	}
	return name
}
