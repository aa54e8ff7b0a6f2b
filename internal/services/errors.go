package services

import "errors"

// Outcome taxonomy. Handlers map these onto status codes; services wrap
// them with entity and operation context and never swallow them.
var (
	// ErrNotFound: the id does not resolve to a live (non-deleted) row.
	ErrNotFound = errors.New("not found")
	// ErrValidation: missing required field or malformed enum value.
	ErrValidation = errors.New("validation failed")
	// ErrConflict: an invariant violation such as duplicate membership.
	ErrConflict = errors.New("conflict")
)
