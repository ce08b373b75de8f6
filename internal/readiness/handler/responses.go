package handler

import (
	"readiness/internal/readiness/models"
)

// Dates are rendered as dd.mm.yyyy and are empty when absent. Colors are
// rendered by name.

// ReadinessResponse is the HTTP response for a single person.
type ReadinessResponse struct {
	PersonID       string            `json:"person_id"`
	Name           string            `json:"name"`
	AsOf           string            `json:"as_of"`
	Overall        string            `json:"overall"`
	Documents      []string          `json:"documents"`
	Conditions     []SectionResponse `json:"conditions"`
	Syllabus       []SectionResponse `json:"syllabus"`
	CrossOnly      []SectionResponse `json:"cross_only"`
	Certifications []SectionResponse `json:"certifications"`
	AnnualChecks   []SectionResponse `json:"annual_checks"`
	Medical        MedicalResponse   `json:"medical"`
}

type SectionResponse struct {
	Requirement string         `json:"requirement"`
	DisplayName string         `json:"display_name"`
	Family      string         `json:"family"`
	Document    string         `json:"document,omitempty"`
	Duration    int            `json:"duration,omitempty"`
	Composite   bool           `json:"composite,omitempty"`
	Items       []ItemResponse `json:"items"`
}

type ItemResponse struct {
	Requirement     string           `json:"requirement"`
	EquipmentID     *int64           `json:"equipment_id,omitempty"`
	EquipmentName   string           `json:"equipment_name,omitempty"`
	LastDate        string           `json:"last_date"`
	LastControlDate string           `json:"last_control_date"`
	ExpiryDate      string           `json:"expiry_date"`
	Color           string           `json:"color"`
	Overlay         *OverlayResponse `json:"overlay,omitempty"`
}

type OverlayResponse struct {
	Document   string `json:"document"`
	Days       int    `json:"days"`
	ExpiryDate string `json:"expiry_date"`
	Color      string `json:"color"`
}

type MedicalResponse struct {
	Full     ItemResponse `json:"full"`
	Interim  ItemResponse `json:"interim"`
	NextKind string       `json:"next_kind,omitempty"`
	NextDate string       `json:"next_date"`
}

type DashboardResponse struct {
	AsOf    string                  `json:"as_of"`
	People  []PersonSummaryResponse `json:"people"`
	Summary models.Summary          `json:"summary"`
}

type PersonSummaryResponse struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Overall  string `json:"overall"`
}

type DeadlinesResponse struct {
	AsOf    string           `json:"as_of"`
	Notices []NoticeResponse `json:"notices"`
}

type NoticeResponse struct {
	Key           string `json:"key"`
	Kind          string `json:"kind"`
	PersonID      string `json:"person_id"`
	PersonName    string `json:"person_name"`
	Family        string `json:"family"`
	Requirement   string `json:"requirement"`
	DisplayName   string `json:"display_name"`
	EquipmentID   *int64 `json:"equipment_id,omitempty"`
	EquipmentName string `json:"equipment_name,omitempty"`
	Deadline      string `json:"deadline"`
	DaysLeft      int    `json:"days_left"`
}

// FromReadiness converts a computed readiness to its HTTP response.
func FromReadiness(r *models.PersonReadiness) *ReadinessResponse {
	docs := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		docs = append(docs, string(d))
	}
	return &ReadinessResponse{
		PersonID:       r.Person.ID.String(),
		Name:           r.Person.Name,
		AsOf:           r.AsOf.Display(),
		Overall:        r.Overall.String(),
		Documents:      docs,
		Conditions:     fromSections(r.Conditions),
		Syllabus:       fromSections(r.Syllabus),
		CrossOnly:      fromSections(r.CrossOnly),
		Certifications: fromSections(r.Certifications),
		AnnualChecks:   fromSections(r.AnnualChecks),
		Medical: MedicalResponse{
			Full:     fromItem(r.Medical.Full),
			Interim:  fromItem(r.Medical.Interim),
			NextKind: r.Medical.NextKind,
			NextDate: r.Medical.NextDate.Display(),
		},
	}
}

func FromDashboard(d *models.Dashboard) *DashboardResponse {
	out := &DashboardResponse{
		AsOf:    d.AsOf.Display(),
		People:  make([]PersonSummaryResponse, 0, len(d.People)),
		Summary: d.Summary,
	}
	for _, p := range d.People {
		out.People = append(out.People, PersonSummaryResponse{
			PersonID: p.PersonID.String(),
			Name:     p.Name,
			Overall:  p.Overall.String(),
		})
	}
	return out
}

func FromNotices(asOf models.Date, notices []models.DeadlineNotice) *DeadlinesResponse {
	out := &DeadlinesResponse{
		AsOf:    asOf.Display(),
		Notices: make([]NoticeResponse, 0, len(notices)),
	}
	for _, n := range notices {
		out.Notices = append(out.Notices, NoticeResponse{
			Key:           n.Key,
			Kind:          string(n.Kind),
			PersonID:      n.PersonID.String(),
			PersonName:    n.PersonName,
			Family:        string(n.Family),
			Requirement:   n.Requirement,
			DisplayName:   n.DisplayName,
			EquipmentID:   equipmentID(n.EquipmentID),
			EquipmentName: n.EquipmentName,
			Deadline:      n.Deadline.Display(),
			DaysLeft:      n.DaysLeft,
		})
	}
	return out
}

func fromSections(sections []models.Section) []SectionResponse {
	out := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		items := make([]ItemResponse, 0, len(s.Items))
		for _, item := range s.Items {
			items = append(items, fromItem(item))
		}
		out = append(out, SectionResponse{
			Requirement: s.Requirement,
			DisplayName: s.DisplayName,
			Family:      string(s.Family),
			Document:    string(s.Document),
			Duration:    s.Duration,
			Composite:   s.Composite,
			Items:       items,
		})
	}
	return out
}

func fromItem(item models.ExpiryResult) ItemResponse {
	out := ItemResponse{
		Requirement:     item.Requirement,
		EquipmentID:     equipmentID(item.EquipmentID),
		EquipmentName:   item.EquipmentName,
		LastDate:        item.LastDate.Display(),
		LastControlDate: item.LastControlDate.Display(),
		ExpiryDate:      item.ExpiryDate.Display(),
		Color:           item.Color.String(),
	}
	if item.Overlay != nil {
		out.Overlay = &OverlayResponse{
			Document:   string(item.Overlay.Document),
			Days:       item.Overlay.Days,
			ExpiryDate: item.Overlay.ExpiryDate.Display(),
			Color:      item.Overlay.Color.String(),
		}
	}
	return out
}

func equipmentID(id *models.EquipmentID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
