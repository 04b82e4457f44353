package domain

import "errors"

// Sentinel errors shared across the store, codec, and service layers.
// Callers match them with errors.Is after unwrapping.
var (
	// ErrNotFound indicates no record matched an update/delete target
	ErrNotFound = errors.New("record not found")

	// ErrEmptyInput indicates a statistic was requested over zero scores
	ErrEmptyInput = errors.New("empty input")

	// ErrCorruptData indicates the persisted store file exists but cannot be parsed
	ErrCorruptData = errors.New("corrupt data file")

	// ErrMalformedRow indicates an import row whose shape does not match the header
	ErrMalformedRow = errors.New("malformed row")

	// ErrInvalidNumber indicates a score field that is non-empty and non-numeric
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidRecord indicates a record that fails validation (e.g. blank name)
	ErrInvalidRecord = errors.New("invalid record")
)
