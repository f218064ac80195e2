package ledger

import "errors"

var (
	// ErrValidation marks rejected mutations: empty names, negative
	// amounts, unknown member references, zero included participants.
	// The mutation is blocked entirely; no partial writes.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks operations on unknown member or expense IDs.
	ErrNotFound = errors.New("not found")
)
