package codec

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gradebook/internal/domain"
)

// tableHeader builds the shared tabular header: "name" followed by the sorted
// union of subjects across all records.
func tableHeader(records []domain.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for subject := range rec.Scores {
			seen[subject] = struct{}{}
		}
	}
	return append([]string{"name"}, slices.Sorted(maps.Keys(seen))...)
}

// tableRow renders one record against the header's subject columns
func tableRow(rec domain.Record, subjects []string) []string {
	row := make([]string, 0, len(subjects)+1)
	row = append(row, rec.Name)
	for _, subject := range subjects {
		if score, ok := rec.Score(subject); ok {
			row = append(row, strconv.FormatFloat(score, 'f', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	return row
}

// parseRow converts one data row back into a record. The row must have
// exactly one cell per header column; empty score cells mean the record has
// no score for that subject.
func parseRow(row, subjects []string, line int) (domain.Record, error) {
	if len(row) != len(subjects)+1 {
		return domain.Record{}, fmt.Errorf("row %d has %d columns, header has %d: %w",
			line, len(row), len(subjects)+1, domain.ErrMalformedRow)
	}

	rec := domain.Record{Name: row[0], Scores: make(map[string]float64)}
	for i, subject := range subjects {
		cell := strings.TrimSpace(row[i+1])
		if cell == "" {
			continue
		}
		score, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return domain.Record{}, fmt.Errorf("row %d, subject %q, value %q: %w",
				line, subject, cell, domain.ErrInvalidNumber)
		}
		rec.Scores[subject] = score
	}
	return rec, nil
}

// parseHeader validates a tabular header and returns its subject columns
func parseHeader(header []string) ([]string, error) {
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "name") {
		return nil, fmt.Errorf("header must start with a name column: %w", domain.ErrMalformedRow)
	}
	subjects := make([]string, len(header)-1)
	for i, subject := range header[1:] {
		subjects[i] = strings.TrimSpace(subject)
	}
	return subjects, nil
}
