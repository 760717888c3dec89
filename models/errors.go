package models

import "errors"

var (
	// ErrSchemaMismatch means a required column is missing from one of
	// the source tables. Nothing is loaded when it is returned.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidRange means the month/year selection is malformed
	// (month outside 1-12 or year outside a plausible window).
	ErrInvalidRange = errors.New("invalid date range")
)
