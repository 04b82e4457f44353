// Package jsonfile implements the store.Store interface over a single JSON
// file: an array of record objects, UTF-8, whole-file read and write.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gradebook/internal/domain"
)

// Store implements store.Store backed by a JSON file. The file holds an array
// of {"id","name","scores"} objects. Every mutation rewrites the file via a
// temp-file-then-rename so a crash mid-write leaves the previous contents
// intact.
type Store struct {
	path   string
	roster *domain.Roster
}

// Open loads the roster from path. A missing file yields an empty store, not
// an error. A file that exists but cannot be parsed fails with
// domain.ErrCorruptData and the file is left untouched.
func Open(path string) (*Store, error) {
	s := &Store{path: path, roster: domain.NewRoster()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file %s: %w", path, err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w: %v", path, domain.ErrCorruptData, err)
	}
	if err := s.roster.Replace(records); err != nil {
		return nil, fmt.Errorf("load store file %s: %w", path, err)
	}

	return s, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// save serializes the roster and atomically replaces the backing file
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.roster.Records(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// List returns all records in roster order
func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	return s.roster.Records(), nil
}

// Find returns all records whose name matches exactly (case-sensitive)
func (s *Store) Find(ctx context.Context, name string) ([]domain.Record, error) {
	var out []domain.Record
	for rec := range s.roster.Match(name) {
		out = append(out, rec)
	}
	return out, nil
}

// Search returns all records whose name contains query, case-insensitively
func (s *Store) Search(ctx context.Context, query string) ([]domain.Record, error) {
	var out []domain.Record
	for rec := range s.roster.Search(query) {
		out = append(out, rec)
	}
	return out, nil
}

// Count returns the number of records
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.roster.Len(), nil
}

// Add validates and appends a record, then persists
func (s *Store) Add(ctx context.Context, rec domain.Record) (domain.Record, error) {
	snapshot := s.roster.Records()
	if err := s.roster.Add(rec); err != nil {
		return domain.Record{}, err
	}
	if err := s.save(); err != nil {
		// A failed write must not leave the in-memory state ahead of the file.
		s.roster.Replace(snapshot)
		return domain.Record{}, err
	}
	records := s.roster.Records()
	return records[len(records)-1], nil
}

// Update replaces the scores of the first record matching name, then persists
func (s *Store) Update(ctx context.Context, name string, scores map[string]float64) (domain.Record, error) {
	snapshot := s.roster.Records()
	updated, err := s.roster.Update(name, scores)
	if err != nil {
		return domain.Record{}, err
	}
	if err := s.save(); err != nil {
		s.roster.Replace(snapshot)
		return domain.Record{}, err
	}
	return updated, nil
}

// Delete removes all records matching name, then persists
func (s *Store) Delete(ctx context.Context, name string) (int, error) {
	snapshot := s.roster.Records()
	removed, err := s.roster.Delete(name)
	if err != nil {
		return 0, err
	}
	if err := s.save(); err != nil {
		s.roster.Replace(snapshot)
		return 0, err
	}
	return removed, nil
}

// SortBy stably reorders the roster and persists the new order
func (s *Store) SortBy(ctx context.Context, key domain.SortKey, ascending bool) error {
	s.roster.SortBy(key, ascending)
	return s.save()
}

// ImportRecords bulk-loads records. With replace set the roster is swapped
// for the imported records; otherwise they are appended.
func (s *Store) ImportRecords(ctx context.Context, records []domain.Record, replace bool) (int, error) {
	snapshot := s.roster.Records()

	if replace {
		if err := s.roster.Replace(records); err != nil {
			return 0, err
		}
	} else {
		for _, rec := range records {
			if err := s.roster.Add(rec); err != nil {
				s.roster.Replace(snapshot)
				return 0, err
			}
		}
	}

	if err := s.save(); err != nil {
		s.roster.Replace(snapshot)
		return 0, err
	}
	return len(records), nil
}

// Close is a no-op; the file is never held open across operations
func (s *Store) Close() error {
	return nil
}
