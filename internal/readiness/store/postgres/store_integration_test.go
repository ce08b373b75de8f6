//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"readiness/internal/platform/config"
	platformpg "readiness/internal/platform/postgres"
	"readiness/internal/readiness/models"
	"readiness/internal/readiness/store/postgres"
	"readiness/pkg/platform/sentinel"
	"readiness/pkg/testutil/containers"
)

type StoreSuite struct {
	suite.Suite
	store  *postgres.Store
	person models.Person
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	pg := containers.NewPostgresContainer(s.T())
	s.Require().NoError(platformpg.Migrate(pg.URL, nil))

	db, err := platformpg.Open(context.Background(), config.Database{URL: pg.URL, MaxOpenConns: 4, MaxIdleConns: 2})
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.store = postgres.New(db)

	id, err := models.ParsePersonID("6f1c2a3e-8d4b-4c1a-9e2f-0a1b2c3d4e5f")
	s.Require().NoError(err)
	s.person = models.Person{ID: id, Name: "Petrov A.", Tier: 1, Coefficient: 1.5, Equipment: []models.EquipmentID{102, 101}}

	tier := 1
	s.Require().NoError(s.store.ReplaceConfig(context.Background(), models.Snapshot{
		Equipment: []models.Equipment{
			{ID: 101, Name: "Su-25", Category: "fixed_wing"},
			{ID: 102, Name: "L-39", Category: "fixed_wing"},
		},
		Mappings: []models.DocumentMapping{
			{EquipmentID: 101, Document: "KBP-BA/RA", IsPrimary: true},
			{EquipmentID: 102, Document: "KBP-VA"},
		},
		Rules: []models.RuleEntry{
			{Requirement: "day_simple", Family: models.FamilyCondition, Tier: &tier, Duration: 30},
			{Requirement: "Low altitude", Family: models.FamilySyllabus, Duration: 6, Document: "KBP-BA/RA", NormalizedKey: "low_altitude"},
		},
	}))
	s.Require().NoError(s.store.SavePerson(context.Background(), s.person))
}

func (s *StoreSuite) TestPeople() {
	ctx := context.Background()

	p, err := s.store.FindPerson(ctx, s.person.ID)
	s.Require().NoError(err)
	s.Equal("Petrov A.", p.Name)
	s.Equal(1.5, p.Coefficient)
	s.Equal([]models.EquipmentID{101, 102}, p.Equipment)

	people, err := s.store.ListPeople(ctx)
	s.Require().NoError(err)
	s.Len(people, 1)

	missing, err := models.ParsePersonID("00000000-0000-4000-8000-000000000001")
	s.Require().NoError(err)
	_, err = s.store.FindPerson(ctx, missing)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestConfig() {
	ctx := context.Background()

	rules, err := s.store.LoadRules(ctx)
	s.Require().NoError(err)
	s.Require().Len(rules, 2)
	s.Require().NotNil(rules[0].Tier)
	s.Equal(1, *rules[0].Tier)
	s.Nil(rules[1].Tier)
	s.Equal(models.Document("KBP-BA/RA"), rules[1].Document)

	mappings, err := s.store.LoadMappings(ctx)
	s.Require().NoError(err)
	s.Len(mappings, 2)
	s.True(mappings[0].IsPrimary)

	equipment, err := s.store.LoadEquipment(ctx)
	s.Require().NoError(err)
	s.Len(equipment, 2)
}

func (s *StoreSuite) TestUpsertRecord() {
	ctx := context.Background()
	record := models.ComplianceRecord{
		PersonID:    s.person.ID,
		Requirement: "day_simple",
		Family:      models.FamilyCondition,
		EquipmentID: models.EquipmentRef(101),
		LastDate:    models.NewDate(2025, 5, 1),
	}
	s.Require().NoError(s.store.UpsertRecord(ctx, record))

	record.LastDate = models.NewDate(2025, 5, 20)
	record.LastControlDate = models.NewDate(2025, 5, 25)
	s.Require().NoError(s.store.UpsertRecord(ctx, record))

	untagged := models.ComplianceRecord{
		PersonID:    s.person.ID,
		Requirement: "low_altitude",
		Family:      models.FamilySyllabus,
		LastDate:    models.NewDate(2025, 3, 1),
	}
	s.Require().NoError(s.store.UpsertRecord(ctx, untagged))
	s.Require().NoError(s.store.UpsertRecord(ctx, untagged))

	records, err := s.store.ListRecords(ctx, s.person.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(models.NewDate(2025, 5, 20), records[0].LastDate)
	s.Equal(models.NewDate(2025, 5, 25), records[0].LastControlDate)
	s.Nil(records[1].EquipmentID)
	s.True(records[1].LastControlDate.IsZero())
}

func (s *StoreSuite) TestUpsertRecordUnknownPerson() {
	missing, err := models.ParsePersonID("00000000-0000-4000-8000-000000000002")
	s.Require().NoError(err)
	err = s.store.UpsertRecord(context.Background(), models.ComplianceRecord{
		PersonID:    missing,
		Requirement: "day_simple",
		Family:      models.FamilyCondition,
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestCertificationsAndChecks() {
	ctx := context.Background()
	s.Require().NoError(s.store.AddCertification(ctx, models.CertificationRecord{
		PersonID: s.person.ID,
		Kind:     "emergency_egress",
		Date:     models.NewDate(2025, 1, 10),
		Expiry:   models.NewDate(2026, 1, 10),
	}))
	s.Require().NoError(s.store.AddAnnualCheck(ctx, models.AnnualCheckRecord{
		PersonID: s.person.ID,
		Kind:     "navigation",
		Date:     models.NewDate(2024, 6, 10),
	}))

	certs, err := s.store.ListCertifications(ctx, s.person.ID)
	s.Require().NoError(err)
	s.Require().Len(certs, 1)
	s.Equal(models.NewDate(2026, 1, 10), certs[0].Expiry)

	checks, err := s.store.ListAnnualChecks(ctx, s.person.ID)
	s.Require().NoError(err)
	s.Require().Len(checks, 1)
	s.True(checks[0].Expiry.IsZero())
}
