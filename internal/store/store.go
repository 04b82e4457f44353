package store

import (
	"context"

	"gradebook/internal/domain"
)

// Store defines the interface for roster persistence
type Store interface {
	// Read operations
	List(ctx context.Context) ([]domain.Record, error)
	Find(ctx context.Context, name string) ([]domain.Record, error)
	Search(ctx context.Context, query string) ([]domain.Record, error)
	Count(ctx context.Context) (int, error)

	// Write operations
	Add(ctx context.Context, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, name string, scores map[string]float64) (domain.Record, error)
	Delete(ctx context.Context, name string) (int, error)

	// SortBy stably reorders the persisted roster
	SortBy(ctx context.Context, key domain.SortKey, ascending bool) error

	// ImportRecords bulk-loads records, replacing or merging with existing ones
	ImportRecords(ctx context.Context, records []domain.Record, replace bool) (int, error)

	// Close releases resources
	Close() error
}
