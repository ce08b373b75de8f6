package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: the person, record or configuration row does not exist
//   - ErrConflict: a write collided with a concurrent one
//   - ErrUnavailable: the backing store or broker cannot be reached
//
// For validation errors use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
