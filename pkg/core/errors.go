package core

import "errors"

// Common errors.
var (
	// ErrNotFound means the requested identifier has no backing record.
	// It is a normal outcome, not a failure.
	ErrNotFound = errors.New("note not found")

	// ErrCorrupt means a backing record exists but could not be decoded.
	// Callers treat the note as absent; the storage layer logs the cause.
	ErrCorrupt = errors.New("note record is corrupt")
)
