package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "readiness/pkg/domain-errors"
)

// PersonID identifies a person. The named type keeps it from being mixed up
// with other UUID-backed identifiers.
type PersonID uuid.UUID

// ParsePersonID parses a UUID string, rejecting empty, malformed and nil values.
func ParsePersonID(s string) (PersonID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PersonID{}, dErrors.New(dErrors.CodeInvalidInput, "person id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return PersonID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid person id")
	}
	if parsed == uuid.Nil {
		return PersonID{}, dErrors.New(dErrors.CodeInvalidInput, "person id must not be nil")
	}
	return PersonID(parsed), nil
}

func (id PersonID) String() string {
	return uuid.UUID(id).String()
}

func (id PersonID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id PersonID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *PersonID) UnmarshalText(text []byte) error {
	parsed, err := ParsePersonID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// EquipmentID identifies an equipment type (aircraft type, vehicle model, ...).
type EquipmentID int64

func (id EquipmentID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// EquipmentRef returns a pointer to a copy of id, for optional equipment fields.
func EquipmentRef(id EquipmentID) *EquipmentID {
	return &id
}

// SameEquipment reports whether two optional equipment references are equal;
// two nils are equal.
func SameEquipment(a, b *EquipmentID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Document identifies a curriculum document that governs syllabus requirements.
type Document string
