package models

// Overlay is an informational deadline computed with the cross-cutting
// document's duration. It never changes the owning result's color.
type Overlay struct {
	Document   Document `json:"document"`
	Days       int      `json:"days"`
	ExpiryDate Date     `json:"expiry_date"`
	Color      Color    `json:"color"`
}

// ExpiryResult is the computed status of one (person, requirement, equipment)
// tuple. EquipmentID is nil for person-scoped results.
type ExpiryResult struct {
	Requirement     string       `json:"requirement"`
	EquipmentID     *EquipmentID `json:"equipment_id,omitempty"`
	EquipmentName   string       `json:"equipment_name,omitempty"`
	LastDate        Date         `json:"last_date"`
	LastControlDate Date         `json:"last_control_date"`
	ExpiryDate      Date         `json:"expiry_date"`
	Color           Color        `json:"color"`
	Overlay         *Overlay     `json:"overlay,omitempty"`
}

// MatchesEquipment reports whether r belongs to the given equipment; a nil id
// matches only person-scoped results.
func (r ExpiryResult) MatchesEquipment(id *EquipmentID) bool {
	return SameEquipment(r.EquipmentID, id)
}

// Section is one requirement with its per-equipment (or singleton) results.
type Section struct {
	Requirement   string         `json:"requirement"`
	DisplayName   string         `json:"display_name"`
	Family        Family         `json:"family"`
	Document      Document       `json:"document,omitempty"`
	NormalizedKey string         `json:"normalized_key,omitempty"`
	Duration      int            `json:"duration,omitempty"`
	SortOrder     *int           `json:"sort_order,omitempty"`
	Composite     bool           `json:"composite,omitempty"`
	Items         []ExpiryResult `json:"items"`
}

// Key returns the normalized key when present, otherwise the requirement.
func (s Section) Key() string {
	if s.NormalizedKey != "" {
		return s.NormalizedKey
	}
	return s.Requirement
}

// HasDate reports whether any item carries a recorded date.
func (s Section) HasDate() bool {
	for _, item := range s.Items {
		if !item.LastDate.IsZero() || !item.LastControlDate.IsZero() {
			return true
		}
	}
	return false
}

// MedicalStatus is the alternating full/interim medical pair and which one
// is due next.
type MedicalStatus struct {
	Full     ExpiryResult `json:"full"`
	Interim  ExpiryResult `json:"interim"`
	NextKind string       `json:"next_kind,omitempty"`
	NextDate Date         `json:"next_date"`
}

// PersonReadiness is the full output of a pass for one person.
type PersonReadiness struct {
	Person         Person        `json:"person"`
	AsOf           Date          `json:"as_of"`
	Documents      []Document    `json:"documents"`
	Conditions     []Section     `json:"conditions"`
	Syllabus       []Section     `json:"syllabus"`
	CrossOnly      []Section     `json:"cross_only"`
	Certifications []Section     `json:"certifications"`
	AnnualChecks   []Section     `json:"annual_checks"`
	Medical        MedicalStatus `json:"medical"`
	Overall        Color         `json:"overall"`
}

// ByRequirement flattens the readiness into requirement -> results, the shape
// notification consumers read.
func (p *PersonReadiness) ByRequirement() map[string][]ExpiryResult {
	out := make(map[string][]ExpiryResult)
	for _, group := range [][]Section{p.Conditions, p.Syllabus, p.CrossOnly, p.Certifications, p.AnnualChecks} {
		for _, s := range group {
			out[s.Requirement] = append(out[s.Requirement], s.Items...)
		}
	}
	return out
}

// PersonSummary is one dashboard row.
type PersonSummary struct {
	PersonID PersonID `json:"person_id"`
	Name     string   `json:"name"`
	Overall  Color    `json:"overall"`
}

// Summary counts people per overall color.
type Summary struct {
	Total  int `json:"total"`
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
	Gray   int `json:"gray"`
}

// Add counts one person with the given overall color.
func (s *Summary) Add(c Color) {
	s.Total++
	switch c {
	case Green:
		s.Green++
	case Yellow:
		s.Yellow++
	case Red:
		s.Red++
	default:
		s.Gray++
	}
}

type Dashboard struct {
	AsOf    Date            `json:"as_of"`
	People  []PersonSummary `json:"people"`
	Summary Summary         `json:"summary"`
}

// DeadlineKind classifies a deadline notice.
type DeadlineKind string

const (
	DeadlineExpired DeadlineKind = "expired"
	DeadlineWarning DeadlineKind = "warning"
)

// DeadlineNotice reports one requirement that has expired or is about to.
// Key is stable for a given cycle so consumers can deduplicate.
type DeadlineNotice struct {
	Key           string       `json:"key"`
	Kind          DeadlineKind `json:"kind"`
	PersonID      PersonID     `json:"person_id"`
	PersonName    string       `json:"person_name"`
	Family        Family       `json:"family"`
	Requirement   string       `json:"requirement"`
	DisplayName   string       `json:"display_name"`
	EquipmentID   *EquipmentID `json:"equipment_id,omitempty"`
	EquipmentName string       `json:"equipment_name,omitempty"`
	Deadline      Date         `json:"deadline"`
	DaysLeft      int          `json:"days_left"`
}
