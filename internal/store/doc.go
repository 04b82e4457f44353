// Package store defines the persistence interfaces for the gradebook.
//
// This package provides the storage abstraction for the student roster. The
// implementations live in subpackages:
//
// # JSON File Implementation
//
// The jsonfile implementation is the default backend: a whole-file JSON array
// read at open and rewritten after every mutation. Writes go to a temporary
// file in the same directory followed by a rename, so a crash mid-write never
// corrupts a previously valid file. A missing file opens as an empty store; a
// file that exists but cannot be parsed fails with domain.ErrCorruptData.
//
// # SQLite Implementation
//
// The sqlite implementation keeps records in a single table with the scores
// map stored as a JSON column and an explicit position column that preserves
// roster order across sorts. The schema is migrated automatically on open.
//
// # Ordering
//
// Both backends preserve insertion order and keep the result of an explicit
// SortBy durable until the next mutation or sort.
package store
