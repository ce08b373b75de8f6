// Package postgres is the database-backed readiness store. Dates are kept as
// text and parsed leniently on read, so a malformed legacy value degrades to
// an absent date instead of failing the query.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"readiness/internal/readiness/models"
	"readiness/pkg/platform/sentinel"
	"readiness/pkg/platform/tx"
)

const foreignKeyViolation = "23503"

// Store implements ports.PersonStore, ports.ConfigStore and ports.RecordStore.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const personQuery = `
	SELECT p.id, p.name, p.tier, p.coefficient,
		COALESCE(string_agg(pe.equipment_id::text, ',' ORDER BY pe.equipment_id), '')
	FROM people p
	LEFT JOIN person_equipment pe ON pe.person_id = p.id
`

func (s *Store) FindPerson(ctx context.Context, id models.PersonID) (*models.Person, error) {
	row := s.q(ctx).QueryRowContext(ctx, personQuery+` WHERE p.id = $1 GROUP BY p.id`, uuid.UUID(id))
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("person %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return &p, nil
}

func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.q(ctx).QueryContext(ctx, personQuery+` GROUP BY p.id ORDER BY p.name, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var out []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (models.Person, error) {
	var (
		id        uuid.UUID
		p         models.Person
		equipment string
	)
	if err := row.Scan(&id, &p.Name, &p.Tier, &p.Coefficient, &equipment); err != nil {
		return models.Person{}, err
	}
	p.ID = models.PersonID(id)
	p.Equipment = []models.EquipmentID{}
	for _, raw := range strings.Split(equipment, ",") {
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Person{}, fmt.Errorf("parse equipment id %q: %w", raw, err)
		}
		p.Equipment = append(p.Equipment, models.EquipmentID(n))
	}
	return p, nil
}

// SavePerson inserts or replaces a person together with their equipment.
func (s *Store) SavePerson(ctx context.Context, p models.Person) error {
	return tx.RunInTx(ctx, s.db, func(ctx context.Context) error {
		q := s.q(ctx)
		_, err := q.ExecContext(ctx, `
			INSERT INTO people (id, name, tier, coefficient)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				tier = EXCLUDED.tier,
				coefficient = EXCLUDED.coefficient
		`, uuid.UUID(p.ID), p.Name, p.Tier, p.Coefficient)
		if err != nil {
			return fmt.Errorf("save person: %w", err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM person_equipment WHERE person_id = $1`, uuid.UUID(p.ID)); err != nil {
			return fmt.Errorf("clear person equipment: %w", err)
		}
		if len(p.Equipment) == 0 {
			return nil
		}
		ids := make([]int64, len(p.Equipment))
		for i, e := range p.Equipment {
			ids[i] = int64(e)
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO person_equipment (person_id, equipment_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, uuid.UUID(p.ID), pq.Array(ids))
		if err != nil {
			return fmt.Errorf("save person equipment: %w", err)
		}
		return nil
	})
}

func (s *Store) LoadRules(ctx context.Context) ([]models.RuleEntry, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT requirement, display_name, family, tier, duration, document,
			normalized_key, time_of_day, sort_order, category
		FROM rule_entries
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	defer rows.Close()

	var out []models.RuleEntry
	for rows.Next() {
		var (
			r         models.RuleEntry
			tier      sql.NullInt64
			sortOrder sql.NullInt64
		)
		if err := rows.Scan(&r.Requirement, &r.DisplayName, &r.Family, &tier, &r.Duration, &r.Document,
			&r.NormalizedKey, &r.TimeOfDay, &sortOrder, &r.Category); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		r.Tier = intPtr(tier)
		r.SortOrder = intPtr(sortOrder)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) LoadMappings(ctx context.Context) ([]models.DocumentMapping, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT equipment_id, document, is_primary
		FROM equipment_documents
		ORDER BY equipment_id, document
	`)
	if err != nil {
		return nil, fmt.Errorf("load mappings: %w", err)
	}
	defer rows.Close()

	var out []models.DocumentMapping
	for rows.Next() {
		var m models.DocumentMapping
		if err := rows.Scan(&m.EquipmentID, &m.Document, &m.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) LoadEquipment(ctx context.Context) ([]models.Equipment, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT id, name, category FROM equipment ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	defer rows.Close()

	var out []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Category); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ReplaceConfig swaps the whole configuration snapshot in one transaction.
func (s *Store) ReplaceConfig(ctx context.Context, snap models.Snapshot) error {
	return tx.RunInTx(ctx, s.db, func(ctx context.Context) error {
		q := s.q(ctx)
		for _, stmt := range []string{
			`DELETE FROM equipment_documents`,
			`DELETE FROM rule_entries`,
		} {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("clear config: %w", err)
			}
		}
		for _, e := range snap.Equipment {
			_, err := q.ExecContext(ctx, `
				INSERT INTO equipment (id, name, category) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category
			`, e.ID, e.Name, e.Category)
			if err != nil {
				return fmt.Errorf("save equipment %s: %w", e.ID, err)
			}
		}
		for _, m := range snap.Mappings {
			_, err := q.ExecContext(ctx, `
				INSERT INTO equipment_documents (equipment_id, document, is_primary) VALUES ($1, $2, $3)
			`, m.EquipmentID, m.Document, m.IsPrimary)
			if err != nil {
				return fmt.Errorf("save mapping %s/%s: %w", m.EquipmentID, m.Document, err)
			}
		}
		for _, r := range snap.Rules {
			_, err := q.ExecContext(ctx, `
				INSERT INTO rule_entries (requirement, display_name, family, tier, duration, document,
					normalized_key, time_of_day, sort_order, category)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`, r.Requirement, r.DisplayName, r.Family, nullInt(r.Tier), r.Duration, r.Document,
				r.NormalizedKey, r.TimeOfDay, nullInt(r.SortOrder), r.Category)
			if err != nil {
				return fmt.Errorf("save rule %s: %w", r.Requirement, err)
			}
		}
		return nil
	})
}

func (s *Store) ListRecords(ctx context.Context, id models.PersonID) ([]models.ComplianceRecord, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT requirement, family, equipment_id, last_date, last_control_date
		FROM compliance_records
		WHERE person_id = $1
		ORDER BY id
	`, uuid.UUID(id))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []models.ComplianceRecord
	for rows.Next() {
		var (
			r         = models.ComplianceRecord{PersonID: id}
			equipment sql.NullInt64
		)
		if err := rows.Scan(&r.Requirement, &r.Family, &equipment, &r.LastDate, &r.LastControlDate); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if equipment.Valid {
			r.EquipmentID = models.EquipmentRef(models.EquipmentID(equipment.Int64))
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListCertifications(ctx context.Context, id models.PersonID) ([]models.CertificationRecord, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT kind, date, expiry FROM certification_records WHERE person_id = $1 ORDER BY id
	`, uuid.UUID(id))
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	defer rows.Close()

	var out []models.CertificationRecord
	for rows.Next() {
		r := models.CertificationRecord{PersonID: id}
		if err := rows.Scan(&r.Kind, &r.Date, &r.Expiry); err != nil {
			return nil, fmt.Errorf("scan certification: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListAnnualChecks(ctx context.Context, id models.PersonID) ([]models.AnnualCheckRecord, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT kind, date, expiry FROM annual_checks WHERE person_id = $1 ORDER BY id
	`, uuid.UUID(id))
	if err != nil {
		return nil, fmt.Errorf("list annual checks: %w", err)
	}
	defer rows.Close()

	var out []models.AnnualCheckRecord
	for rows.Next() {
		r := models.AnnualCheckRecord{PersonID: id}
		if err := rows.Scan(&r.Kind, &r.Date, &r.Expiry); err != nil {
			return nil, fmt.Errorf("scan annual check: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpsertRecord(ctx context.Context, r models.ComplianceRecord) error {
	var equipment sql.NullInt64
	if r.EquipmentID != nil {
		equipment = sql.NullInt64{Int64: int64(*r.EquipmentID), Valid: true}
	}
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO compliance_records (person_id, requirement, family, equipment_id, last_date, last_control_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (person_id, family, requirement, (COALESCE(equipment_id, 0))) DO UPDATE SET
			last_date = EXCLUDED.last_date,
			last_control_date = EXCLUDED.last_control_date,
			updated_at = NOW()
	`, uuid.UUID(r.PersonID), r.Requirement, r.Family, equipment, r.LastDate, r.LastControlDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("person %s: %w", r.PersonID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// AddCertification appends a certification record.
func (s *Store) AddCertification(ctx context.Context, r models.CertificationRecord) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO certification_records (person_id, kind, date, expiry) VALUES ($1, $2, $3, $4)
	`, uuid.UUID(r.PersonID), r.Kind, r.Date, r.Expiry)
	if err != nil {
		return fmt.Errorf("add certification: %w", err)
	}
	return nil
}

// AddAnnualCheck appends an annual check record.
func (s *Store) AddAnnualCheck(ctx context.Context, r models.AnnualCheckRecord) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO annual_checks (person_id, kind, date, expiry) VALUES ($1, $2, $3, $4)
	`, uuid.UUID(r.PersonID), r.Kind, r.Date, r.Expiry)
	if err != nil {
		return fmt.Errorf("add annual check: %w", err)
	}
	return nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
