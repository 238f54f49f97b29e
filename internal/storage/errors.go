package storage

import dErrors "events-tracker/pkg/domain-errors"

var (
	// ErrNotFound keeps storage-level 404s consistent across the in-memory
	// and Redis implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")
)
