// Package domain defines the core domain types for the gradebook.
//
// This package contains the entities and value objects the rest of the system
// operates on: student records, the ordered roster that holds them, sort keys,
// performance bands, and the sentinel errors shared across layers.
//
// # Core Types
//
// Record represents a single student: a name (the natural key for lookups,
// duplicates permitted), a generated ID that keeps duplicates
// distinguishable, and a map from subject name to numeric score.
//
// Roster is the ordered collection of records. It preserves insertion order
// until an explicit sort, owns its records exclusively, and hands out deep
// copies so callers never mutate it through a returned view. Name lookups are
// exposed as lazy, restartable sequences.
//
// # Performance Bands
//
// BandFor maps an average score to a qualitative label (Excellent, Good,
// Average, Needs Improvement) used in listings and reports.
//
// # Errors
//
// The sentinel errors (ErrNotFound, ErrEmptyInput, ErrCorruptData,
// ErrMalformedRow, ErrInvalidNumber, ErrInvalidRecord) are wrapped with
// context by the layer that raises them and matched with errors.Is at the CLI
// boundary.
package domain
