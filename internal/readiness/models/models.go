package models

// Family groups requirement types by what they are scoped to.
type Family string

const (
	// FamilyCondition requirements are scoped to equipment and an operating condition.
	FamilyCondition Family = "condition"
	// FamilySyllabus requirements are scoped to a curriculum document.
	FamilySyllabus Family = "syllabus"
	// FamilyCertification requirements are person-scoped and carry a stored expiry.
	FamilyCertification Family = "certification"
	// FamilyAnnualCheck requirements are person-scoped yearly checks.
	FamilyAnnualCheck Family = "annual_check"
)

func (f Family) IsValid() bool {
	switch f {
	case FamilyCondition, FamilySyllabus, FamilyCertification, FamilyAnnualCheck:
		return true
	}
	return false
}

// Person is the subject of a readiness pass.
type Person struct {
	ID          PersonID      `json:"id"`
	Name        string        `json:"name"`
	Tier        int           `json:"tier"`
	Coefficient float64       `json:"coefficient"`
	Equipment   []EquipmentID `json:"equipment"`
}

type Equipment struct {
	ID       EquipmentID `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
}

type RequirementType struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Family      Family `json:"family"`
}

// RuleEntry is one row of the rule table. Duration is in days for condition
// rules and in months for syllabus rules. A nil Tier applies to every tier and
// is never scaled by the person's coefficient.
type RuleEntry struct {
	Requirement   string   `json:"requirement" toml:"requirement"`
	DisplayName   string   `json:"display_name,omitempty" toml:"display_name"`
	Family        Family   `json:"family" toml:"family"`
	Tier          *int     `json:"tier,omitempty" toml:"tier"`
	Duration      int      `json:"duration" toml:"duration"`
	Document      Document `json:"document,omitempty" toml:"document"`
	NormalizedKey string   `json:"normalized_key,omitempty" toml:"normalized_key"`
	TimeOfDay     string   `json:"time_of_day,omitempty" toml:"time_of_day"`
	SortOrder     *int     `json:"sort_order,omitempty" toml:"sort_order"`
	Category      string   `json:"category,omitempty" toml:"category"`
}

// Key returns the identifier a syllabus rule is grouped under: the normalized
// key when present, otherwise the requirement name.
func (r RuleEntry) Key() string {
	if r.NormalizedKey != "" {
		return r.NormalizedKey
	}
	return r.Requirement
}

// Label returns the display name, falling back to the requirement name.
func (r RuleEntry) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Requirement
}

// ComplianceRecord is the last time a person performed a requirement, with an
// optional abbreviated control performance. A nil EquipmentID means the
// record is not tied to a specific equipment item.
type ComplianceRecord struct {
	PersonID        PersonID     `json:"person_id"`
	Requirement     string       `json:"requirement"`
	Family          Family       `json:"family"`
	EquipmentID     *EquipmentID `json:"equipment_id,omitempty"`
	LastDate        Date         `json:"last_date"`
	LastControlDate Date         `json:"last_control_date"`
}

// CertificationRecord is a dated certification with an optional stored expiry.
type CertificationRecord struct {
	PersonID PersonID `json:"person_id"`
	Kind     string   `json:"kind"`
	Date     Date     `json:"date"`
	Expiry   Date     `json:"expiry"`
}

// AnnualCheckRecord is a yearly check; the latest one per kind counts.
type AnnualCheckRecord struct {
	PersonID PersonID `json:"person_id"`
	Kind     string   `json:"kind"`
	Date     Date     `json:"date"`
	Expiry   Date     `json:"expiry"`
}

type DocumentMapping struct {
	EquipmentID EquipmentID `json:"equipment_id"`
	Document    Document    `json:"document"`
	IsPrimary   bool        `json:"is_primary"`
}

// Snapshot is the configuration a pass runs against. It is built once per
// pass and treated as read-only afterwards.
type Snapshot struct {
	Rules     []RuleEntry       `json:"rules"`
	Mappings  []DocumentMapping `json:"mappings"`
	Equipment []Equipment       `json:"equipment"`
}

// EquipmentIndex returns the equipment keyed by ID.
func (s *Snapshot) EquipmentIndex() map[EquipmentID]Equipment {
	out := make(map[EquipmentID]Equipment, len(s.Equipment))
	for _, e := range s.Equipment {
		out[e.ID] = e
	}
	return out
}

// Records are the per-person inputs of a pass. Any field may be empty when
// its fetch failed or returned nothing.
type Records struct {
	Compliance     []ComplianceRecord    `json:"compliance"`
	Certifications []CertificationRecord `json:"certifications"`
	AnnualChecks   []AnnualCheckRecord   `json:"annual_checks"`
}
