package engine_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/models"
)

const (
	docVA   models.Document = "KBP-VA"
	docBARA models.Document = "KBP-BA/RA"
	docV    models.Document = "KBP-V"
	docKLPV models.Document = "KLPV"
)

type PassSuite struct {
	suite.Suite
	engine   *engine.Engine
	snapshot *models.Snapshot
	person   models.Person
	records  models.Records
}

func TestPassSuite(t *testing.T) {
	suite.Run(t, new(PassSuite))
}

func (s *PassSuite) SetupTest() {
	s.engine = engine.New(engine.Policy{
		Thresholds: engine.DefaultThresholds(),
		Documents: engine.DocumentConfig{
			CrossDocument: docKLPV,
			Priority:      []models.Document{docVA, docBARA, docV},
		},
		Cross: engine.CrossConfig{
			SuppressedKeys: []string{"suppressed"},
			DocumentCategories: map[models.Document][]string{
				docVA:   {"fixed_wing"},
				docBARA: {"fixed_wing"},
				docV:    {"rotary_wing"},
			},
		},
		Dependencies:   map[string][]string{"strike_simple_targets": {"low_altitude"}},
		ConditionOrder: []string{"day_simple", "night_simple"},
		Medical:        medicalPolicy,
		Certifications: []engine.RecordKind{
			{Kind: "egress"},
			{Kind: "article_205", PerEquipment: true},
		},
		AnnualChecks:      []engine.RecordKind{{Kind: "navigation"}},
		AnnualCheckMonths: 12,
	})

	s.snapshot = &models.Snapshot{
		Equipment: []models.Equipment{
			{ID: 1, Name: "Su-25", Category: "fixed_wing"},
			{ID: 2, Name: "L-39", Category: "fixed_wing"},
			{ID: 3, Name: "Mi-8", Category: "rotary_wing"},
		},
		Mappings: []models.DocumentMapping{
			mapping(1, docBARA, false),
			mapping(1, docKLPV, false),
			mapping(2, docBARA, false),
			mapping(2, docVA, false),
			mapping(3, docV, false),
		},
		Rules: []models.RuleEntry{
			{Requirement: "day_simple", Family: models.FamilyCondition, Tier: tier(1), Duration: 30},
			{Requirement: "day_simple", Family: models.FamilyCondition, Tier: tier(2), Duration: 45},
			{Requirement: "night_simple", Family: models.FamilyCondition, Tier: tier(1), Duration: 20},
			{Requirement: "Low altitude", NormalizedKey: "low_altitude", Family: models.FamilySyllabus, Tier: tier(1), Duration: 6, TimeOfDay: "day"},
			{Requirement: "Complex aerobatics", NormalizedKey: "complex_aerobatics_low", Family: models.FamilySyllabus, Document: docBARA, Duration: 12},
			{Requirement: "Strike simple targets", NormalizedKey: "strike_simple_targets", Family: models.FamilySyllabus, Document: docBARA, Duration: 6},
			{Requirement: "Hover", NormalizedKey: "hover", Family: models.FamilySyllabus, Document: docV, Duration: 6},
			{Requirement: "Low altitude", NormalizedKey: "low_altitude", Family: models.FamilySyllabus, Document: docKLPV, Duration: 3},
			{Requirement: "Test flight", NormalizedKey: "test_flight", Family: models.FamilySyllabus, Document: docKLPV, Duration: 12, Category: "fixed_wing"},
			{Requirement: "Autorotation", NormalizedKey: "autorotation", Family: models.FamilySyllabus, Document: docKLPV, Duration: 12, Category: "rotary_wing"},
			{Requirement: "Suppressed", NormalizedKey: "suppressed", Family: models.FamilySyllabus, Document: docKLPV, Duration: 12},
		},
	}

	id := models.PersonID(uuid.New())
	s.person = models.Person{ID: id, Name: "Test Pilot", Tier: 1, Coefficient: 1, Equipment: []models.EquipmentID{1, 2}}
	s.records = models.Records{
		Compliance: []models.ComplianceRecord{
			record("day_simple", models.FamilyCondition, eqRef(1), today.AddDays(-20), models.Date{}),
			record("low_altitude", models.FamilySyllabus, nil, today.AddDays(-100), models.Date{}),
			record("complex_aerobatics_low", models.FamilySyllabus, eqRef(1), today.AddDays(-400), models.Date{}),
		},
		Certifications: []models.CertificationRecord{
			cert("egress", today.AddDays(-300), today.AddDays(65)),
			cert("full", today.AddDays(-200), models.Date{}),
			cert("interim", today.AddDays(-20), models.Date{}),
		},
		AnnualChecks: []models.AnnualCheckRecord{
			{Kind: "navigation", Date: today.AddDays(-30), Expiry: today.AddDays(335)},
		},
	}
}

func (s *PassSuite) compute() models.PersonReadiness {
	return s.engine.Compute(s.snapshot, s.person, s.records, today)
}

func sectionByKey(sections []models.Section, key string) *models.Section {
	for i := range sections {
		if sections[i].Key() == key {
			return &sections[i]
		}
	}
	return nil
}

// =============================================================================
// Documents and conditions
// =============================================================================

func (s *PassSuite) TestDocuments() {
	got := s.compute()
	s.Equal([]models.Document{docBARA}, got.Documents)
}

func (s *PassSuite) TestConditions() {
	got := s.compute()
	s.Require().Len(got.Conditions, 2)

	day := got.Conditions[0]
	s.Equal("day_simple", day.Requirement)
	s.Equal(30, day.Duration)
	s.Require().Len(day.Items, 2)
	s.Equal(engine.Yellow, day.Items[0].Color)
	s.Equal("Su-25", day.Items[0].EquipmentName)
	s.Equal(engine.Gray, day.Items[1].Color)

	s.Run("tier selects the rule row", func() {
		s.person.Tier = 2
		got := s.compute()
		s.Equal(45, got.Conditions[0].Duration)
		s.Equal(engine.Green, got.Conditions[0].Items[0].Color)
	})
}

func (s *PassSuite) TestEquipmentFallsBackToConditionRecords() {
	s.person.Equipment = nil
	got := s.compute()
	s.Equal([]models.EquipmentID{1}, got.Person.Equipment)
	s.Require().Len(got.Conditions[0].Items, 1)
	s.Equal([]models.Document{docBARA}, got.Documents)
}

// =============================================================================
// Syllabus
// =============================================================================

func (s *PassSuite) TestSyllabus() {
	got := s.compute()

	var keys []string
	for _, sec := range got.Syllabus {
		keys = append(keys, sec.Key())
	}
	s.Equal([]string{"low_altitude", "complex_aerobatics_low", "strike_simple_targets"}, keys)

	low := sectionByKey(got.Syllabus, "low_altitude")
	s.Require().NotNil(low)
	s.Equal("Low altitude (day)", low.DisplayName)
	s.Equal(docBARA, low.Document)
	s.Equal(6, low.Duration)

	s.Run("untagged record applies to every equipment item", func() {
		s.Require().Len(low.Items, 2)
		for _, it := range low.Items {
			s.Equal(engine.Green, it.Color)
			s.Equal(today.AddDays(80), it.ExpiryDate)
		}
	})

	s.Run("cross-cutting duration is shown as overlay", func() {
		s.Require().NotNil(low.Items[0].Overlay)
		s.Equal(engine.Red, low.Items[0].Overlay.Color)
		s.Equal(today.AddDays(-10), low.Items[0].Overlay.ExpiryDate)
	})

	s.Run("per-equipment records", func() {
		complex := sectionByKey(got.Syllabus, "complex_aerobatics_low")
		s.Require().NotNil(complex)
		s.Equal(engine.Red, complex.Items[0].Color)
		s.Equal(engine.Gray, complex.Items[1].Color)
	})

	s.Run("composite takes its prerequisite colors", func() {
		strike := sectionByKey(got.Syllabus, "strike_simple_targets")
		s.Require().NotNil(strike)
		s.True(strike.Composite)
		for _, it := range strike.Items {
			s.Equal(engine.Green, it.Color)
			s.True(it.ExpiryDate.IsZero())
		}
	})

	s.Run("inactive document rules are skipped", func() {
		s.Nil(sectionByKey(got.Syllabus, "hover"))
	})
}

func (s *PassSuite) TestUntaggedRulesDroppedWithoutActiveDocument() {
	s.person.Equipment = []models.EquipmentID{3}
	got := s.compute()
	s.Equal([]models.Document{docV}, got.Documents)
	s.NotNil(sectionByKey(got.Syllabus, "hover"))
	s.NotNil(sectionByKey(got.Syllabus, "low_altitude"), "untagged rules fall to the first active document")

	s.person.Equipment = []models.EquipmentID{2}
	got = s.compute()
	s.Empty(got.Documents)
	s.Empty(got.Syllabus)
	s.Empty(got.CrossOnly)
}

func (s *PassSuite) TestCrossOnly() {
	got := s.compute()
	var keys []string
	for _, sec := range got.CrossOnly {
		keys = append(keys, sec.Key())
	}
	s.Equal([]string{"test_flight"}, keys)
	s.Len(got.CrossOnly[0].Items, 2)
}

// =============================================================================
// Certifications and roll-up
// =============================================================================

func (s *PassSuite) TestCertifications() {
	got := s.compute()
	s.Require().Len(got.Certifications, 2)
	s.Equal(engine.Green, got.Certifications[0].Items[0].Color)
	s.Len(got.Certifications[1].Items, 2)
	s.Equal("full", got.Medical.NextKind)
	s.Require().Len(got.AnnualChecks, 1)
	s.Equal(engine.Green, got.AnnualChecks[0].Items[0].Color)
}

func (s *PassSuite) TestOverall() {
	s.Run("worst item wins", func() {
		s.Equal(engine.Red, s.compute().Overall)
	})

	s.Run("overlay does not count", func() {
		s.records.Compliance = s.records.Compliance[:2]
		got := s.compute()
		s.Equal(engine.Yellow, got.Overall)
	})

	s.Run("no data is gray", func() {
		got := s.engine.Compute(&models.Snapshot{}, models.Person{ID: s.person.ID}, models.Records{}, today)
		s.Equal(engine.Gray, got.Overall)
	})
}

func (s *PassSuite) TestDuplicateRecordsKeepLatest() {
	s.records.Compliance = append(s.records.Compliance,
		record("day_simple", models.FamilyCondition, eqRef(1), today.AddDays(-200), models.Date{}))
	got := s.compute()
	s.Equal(today.AddDays(-20), got.Conditions[0].Items[0].LastDate)
}

func (s *PassSuite) TestDeadlines() {
	got := s.compute()
	notices := engine.Deadlines(&got, 15)

	kinds := make(map[string]models.DeadlineKind)
	for _, n := range notices {
		kinds[n.Key] = n.Kind
		s.Equal(s.person.ID, n.PersonID)
	}

	dayKey := engine.NoticeKey(s.person.ID, "day_simple", eqRef(1), today.AddDays(10))
	s.Equal(models.DeadlineWarning, kinds[dayKey])
	complexKey := engine.NoticeKey(s.person.ID, "complex_aerobatics_low", eqRef(1), today.AddDays(-40))
	s.Equal(models.DeadlineExpired, kinds[complexKey])
	s.Len(notices, 2)
}

func TestPassIsSafeForConcurrentUse(t *testing.T) {
	e := engine.New(engine.Policy{ConditionOrder: []string{"day_simple"}})
	snap := &models.Snapshot{Rules: []models.RuleEntry{{Requirement: "day_simple", Family: models.FamilyCondition, Duration: 30}}}
	pass := e.NewPass(snap, today)

	var wg sync.WaitGroup
	results := make([]models.PersonReadiness, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			person := models.Person{ID: models.PersonID(uuid.New()), Coefficient: 1, Equipment: []models.EquipmentID{models.EquipmentID(i)}}
			recs := models.Records{Compliance: []models.ComplianceRecord{
				record("day_simple", models.FamilyCondition, eqRef(models.EquipmentID(i)), today.AddDays(-i), models.Date{}),
			}}
			results[i] = pass.Compute(person, recs)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		require.Len(t, r.Conditions, 1)
		assert.Equal(t, today.AddDays(30-i), r.Conditions[0].Items[0].ExpiryDate)
	}
}
