// Package sqlite implements the store.Store interface using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gradebook/internal/domain"

	_ "modernc.org/sqlite"
)

// Store implements store.Store backed by a SQLite database. Records live in a
// single table with the scores map as a JSON column; an explicit position
// column preserves roster order and makes sort results durable.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and migrates the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		scores JSON NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_records_name ON records(name);
	CREATE INDEX IF NOT EXISTS idx_records_position ON records(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// List returns all records in roster order
func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	return s.query(ctx, `SELECT id, name, scores FROM records ORDER BY position`)
}

// Find returns all records whose name matches exactly (case-sensitive)
func (s *Store) Find(ctx context.Context, name string) ([]domain.Record, error) {
	return s.query(ctx, `SELECT id, name, scores FROM records WHERE name = ? ORDER BY position`, name)
}

// Search returns all records whose name contains query, case-insensitively
func (s *Store) Search(ctx context.Context, query string) ([]domain.Record, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	return s.query(ctx,
		`SELECT id, name, scores FROM records WHERE lower(name) LIKE ? ESCAPE '\' ORDER BY position`,
		pattern)
}

// Count returns the number of records
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// Add validates and appends a record at the end of the roster
func (s *Store) Add(ctx context.Context, rec domain.Record) (domain.Record, error) {
	if err := rec.Validate(); err != nil {
		return domain.Record{}, err
	}
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Normalize()

	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return domain.Record{}, fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, name, scores, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM records))`,
		rec.ID, rec.Name, string(scores))
	if err != nil {
		return domain.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

// Update replaces the scores of the first record matching name in roster order
func (s *Store) Update(ctx context.Context, name string, scores map[string]float64) (domain.Record, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM records WHERE name = ? ORDER BY position LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("update %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("locate record: %w", err)
	}

	if scores == nil {
		scores = map[string]float64{}
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return domain.Record{}, fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE records SET scores = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(data), id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("update record: %w", err)
	}

	return domain.Record{ID: id, Name: name, Scores: scores}, nil
}

// Delete removes all records matching name and returns the count removed
func (s *Store) Delete(ctx context.Context, name string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted records: %w", err)
	}
	if removed == 0 {
		return 0, fmt.Errorf("delete %q: %w", name, domain.ErrNotFound)
	}
	return int(removed), nil
}

// SortBy stably reorders the roster and persists the new positions
func (s *Store) SortBy(ctx context.Context, key domain.SortKey, ascending bool) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	roster, err := domain.RosterOf(records)
	if err != nil {
		return err
	}
	roster.SortBy(key, ascending)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for position, rec := range roster.Records() {
		if _, err := tx.ExecContext(ctx,
			`UPDATE records SET position = ? WHERE id = ?`, position, rec.ID); err != nil {
			return fmt.Errorf("reposition record: %w", err)
		}
	}
	return tx.Commit()
}

// ImportRecords bulk-loads records in a single transaction. With replace set
// the table is cleared first; otherwise records append after the current tail.
func (s *Store) ImportRecords(ctx context.Context, records []domain.Record, replace bool) (int, error) {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return 0, err
		}
		records[i].Name = strings.TrimSpace(records[i].Name)
		records[i].Normalize()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	position := 0
	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
			return 0, fmt.Errorf("clear records: %w", err)
		}
	} else {
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), -1) + 1 FROM records`).Scan(&position)
		if err != nil {
			return 0, fmt.Errorf("find tail position: %w", err)
		}
	}

	for _, rec := range records {
		scores, err := json.Marshal(rec.Scores)
		if err != nil {
			return 0, fmt.Errorf("marshal scores: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (id, name, scores, position) VALUES (?, ?, ?, ?)`,
			rec.ID, rec.Name, string(scores), position); err != nil {
			return 0, fmt.Errorf("insert record %q: %w", rec.Name, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(records), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// query runs a record select and scans the rows into domain records
func (s *Store) query(ctx context.Context, q string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var scores string
		if err := rows.Scan(&rec.ID, &rec.Name, &scores); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w: %v", domain.ErrCorruptData, err)
		}
		rec.Normalize()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// escapeLike escapes LIKE wildcards in a user-supplied search term
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
