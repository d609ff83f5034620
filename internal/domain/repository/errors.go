package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness or slot constraint rejects
	// the write (duplicate email/phone, overlapping appointment, stale
	// status).
	ErrConflict = errors.New("conflict")
)
