package core

import "errors"

// Common errors.
var (
	// ErrNotFound signals that a requested record id is absent. It is a
	// distinct state, not a storage failure: callers can branch on it
	// with errors.Is.
	ErrNotFound = errors.New("record not found")

	// ErrReadOnly signals that the store rejects writes.
	ErrReadOnly = errors.New("store is in read-only mode")
)
