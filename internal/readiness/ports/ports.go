// Package ports defines the interfaces the readiness service consumes.
// Stores return sentinel errors; the service translates them.
package ports

import (
	"context"

	"readiness/internal/readiness/models"
)

// PersonStore reads the people a pass runs for.
type PersonStore interface {
	// FindPerson returns sentinel.ErrNotFound when the person does not exist.
	FindPerson(ctx context.Context, id models.PersonID) (*models.Person, error)
	ListPeople(ctx context.Context) ([]models.Person, error)
}

// ConfigStore reads the configuration snapshot of a pass.
type ConfigStore interface {
	LoadRules(ctx context.Context) ([]models.RuleEntry, error)
	LoadMappings(ctx context.Context) ([]models.DocumentMapping, error)
	LoadEquipment(ctx context.Context) ([]models.Equipment, error)
}

// RecordStore reads and writes per-person compliance inputs.
type RecordStore interface {
	ListRecords(ctx context.Context, id models.PersonID) ([]models.ComplianceRecord, error)
	ListCertifications(ctx context.Context, id models.PersonID) ([]models.CertificationRecord, error)
	ListAnnualChecks(ctx context.Context, id models.PersonID) ([]models.AnnualCheckRecord, error)

	// UpsertRecord replaces the record with the same person, family,
	// requirement and equipment, or inserts it.
	UpsertRecord(ctx context.Context, record models.ComplianceRecord) error
}

// NoticePublisher delivers deadline notices to downstream consumers.
type NoticePublisher interface {
	Publish(ctx context.Context, notices ...models.DeadlineNotice) error
}
