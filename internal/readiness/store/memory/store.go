// Package memory is an in-memory readiness store for tests, local runs and
// the CLI's fixture mode.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"readiness/internal/readiness/models"
	"readiness/pkg/platform/sentinel"
)

// Fixture is the JSON seed format of a Store.
type Fixture struct {
	People         []models.Person              `json:"people"`
	Equipment      []models.Equipment           `json:"equipment"`
	Mappings       []models.DocumentMapping     `json:"mappings"`
	Rules          []models.RuleEntry           `json:"rules"`
	Records        []models.ComplianceRecord    `json:"records"`
	Certifications []models.CertificationRecord `json:"certifications"`
	AnnualChecks   []models.AnnualCheckRecord   `json:"annual_checks"`
}

// Store implements ports.PersonStore, ports.ConfigStore and ports.RecordStore.
type Store struct {
	mu             sync.RWMutex
	people         []models.Person
	equipment      []models.Equipment
	mappings       []models.DocumentMapping
	rules          []models.RuleEntry
	records        []models.ComplianceRecord
	certifications []models.CertificationRecord
	annualChecks   []models.AnnualCheckRecord
}

func New() *Store {
	return &Store{}
}

// FromFixture builds a store holding copies of f's rows.
func FromFixture(f Fixture) *Store {
	return &Store{
		people:         slices.Clone(f.People),
		equipment:      slices.Clone(f.Equipment),
		mappings:       slices.Clone(f.Mappings),
		rules:          slices.Clone(f.Rules),
		records:        slices.Clone(f.Records),
		certifications: slices.Clone(f.Certifications),
		annualChecks:   slices.Clone(f.AnnualChecks),
	}
}

// ReadFixture decodes a JSON fixture file. Dates accept ISO or dd.mm.yyyy;
// unparsable dates load as absent.
func ReadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return f, nil
}

// LoadFixture builds a store from a JSON fixture file.
func LoadFixture(path string) (*Store, error) {
	f, err := ReadFixture(path)
	if err != nil {
		return nil, err
	}
	return FromFixture(f), nil
}

func (s *Store) AddPerson(p models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = append(s.people, p)
}

func (s *Store) AddEquipment(e ...models.Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipment = append(s.equipment, e...)
}

func (s *Store) AddMappings(m ...models.DocumentMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = append(s.mappings, m...)
}

func (s *Store) AddRules(r ...models.RuleEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r...)
}

func (s *Store) AddCertifications(c ...models.CertificationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certifications = append(s.certifications, c...)
}

func (s *Store) AddAnnualChecks(c ...models.AnnualCheckRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annualChecks = append(s.annualChecks, c...)
}

func (s *Store) FindPerson(_ context.Context, id models.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.people {
		if p.ID == id {
			p.Equipment = slices.Clone(p.Equipment)
			return &p, nil
		}
	}
	return nil, fmt.Errorf("person %s: %w", id, sentinel.ErrNotFound)
}

// ListPeople returns people in insertion order.
func (s *Store) ListPeople(_ context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Person, len(s.people))
	for i, p := range s.people {
		p.Equipment = slices.Clone(p.Equipment)
		out[i] = p
	}
	return out, nil
}

func (s *Store) LoadRules(_ context.Context) ([]models.RuleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rules), nil
}

func (s *Store) LoadMappings(_ context.Context) ([]models.DocumentMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mappings), nil
}

func (s *Store) LoadEquipment(_ context.Context) ([]models.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.equipment), nil
}

func (s *Store) ListRecords(_ context.Context, id models.PersonID) ([]models.ComplianceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByPerson(s.records, id, func(r models.ComplianceRecord) models.PersonID { return r.PersonID }), nil
}

func (s *Store) ListCertifications(_ context.Context, id models.PersonID) ([]models.CertificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByPerson(s.certifications, id, func(r models.CertificationRecord) models.PersonID { return r.PersonID }), nil
}

func (s *Store) ListAnnualChecks(_ context.Context, id models.PersonID) ([]models.AnnualCheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterByPerson(s.annualChecks, id, func(r models.AnnualCheckRecord) models.PersonID { return r.PersonID }), nil
}

func (s *Store) UpsertRecord(_ context.Context, record models.ComplianceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if sameRecord(existing, record) {
			s.records[i] = record
			return nil
		}
	}
	s.records = append(s.records, record)
	return nil
}

func sameRecord(a, b models.ComplianceRecord) bool {
	return a.PersonID == b.PersonID &&
		a.Family == b.Family &&
		a.Requirement == b.Requirement &&
		models.SameEquipment(a.EquipmentID, b.EquipmentID)
}

func filterByPerson[T any](rows []T, id models.PersonID, personOf func(T) models.PersonID) []T {
	var out []T
	for _, r := range rows {
		if personOf(r) == id {
			out = append(out, r)
		}
	}
	return out
}
