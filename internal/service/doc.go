// Package service implements the business logic layer of the gradebook.
//
// RosterService sits between the CLI and the storage backend. It applies the
// configured score-range validation before any mutation reaches the store,
// reduces the roster for statistics, selects a codec by file extension for
// import/export, and emits a structured log entry for every mutation.
//
// Errors from the store and codecs pass through unchanged so the CLI can
// match the domain sentinels with errors.Is.
package service
