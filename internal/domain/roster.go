package domain

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// SortKey identifies the field a roster sort orders by
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByAverage SortKey = "average"
)

// ParseSortKey parses a sort key, reporting whether the input was recognized
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName, true
	case SortByAverage:
		return SortByAverage, true
	}
	return SortByName, false
}

// Roster is an ordered collection of records. Insertion order is preserved
// until an explicit sort is requested. The roster owns its records; accessors
// return deep copies.
type Roster struct {
	records []Record
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{}
}

// RosterOf creates a roster seeded with the given records. Each record is
// normalized and validated; the first invalid record aborts construction.
func RosterOf(records []Record) (*Roster, error) {
	roster := NewRoster()
	for _, rec := range records {
		if err := roster.Add(rec); err != nil {
			return nil, err
		}
	}
	return roster, nil
}

// Len returns the number of records
func (ro *Roster) Len() int {
	return len(ro.records)
}

// Records returns a deep copy of the records in roster order
func (ro *Roster) Records() []Record {
	out := make([]Record, len(ro.records))
	for i, rec := range ro.records {
		out[i] = rec.Clone()
	}
	return out
}

// Add validates, normalizes, and appends a record. Duplicate names are
// permitted.
func (ro *Roster) Add(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Normalize()
	ro.records = append(ro.records, rec.Clone())
	return nil
}

// Match returns a lazy sequence of copies of the records whose name equals
// name (exact, case-sensitive). The sequence is finite and restartable.
func (ro *Roster) Match(name string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, rec := range ro.records {
			if rec.Name != name {
				continue
			}
			if !yield(rec.Clone()) {
				return
			}
		}
	}
}

// Search returns a lazy sequence of copies of the records whose name contains
// query, case-insensitively.
func (ro *Roster) Search(query string) iter.Seq[Record] {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(yield func(Record) bool) {
		for _, rec := range ro.records {
			if !strings.Contains(strings.ToLower(rec.Name), query) {
				continue
			}
			if !yield(rec.Clone()) {
				return
			}
		}
	}
}

// Update replaces the scores of the first record matching name and returns a
// copy of the updated record. Later duplicates are untouched.
func (ro *Roster) Update(name string, scores map[string]float64) (Record, error) {
	for i := range ro.records {
		if ro.records[i].Name != name {
			continue
		}
		ro.records[i].Scores = make(map[string]float64, len(scores))
		for subject, score := range scores {
			ro.records[i].Scores[subject] = score
		}
		return ro.records[i].Clone(), nil
	}
	return Record{}, fmt.Errorf("update %q: %w", name, ErrNotFound)
}

// Delete removes every record matching name and returns the count removed
func (ro *Roster) Delete(name string) (int, error) {
	kept := ro.records[:0]
	removed := 0
	for _, rec := range ro.records {
		if rec.Name == name {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	ro.records = kept
	if removed == 0 {
		return 0, fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	return removed, nil
}

// SortBy stably reorders the roster by name or by per-record average score.
// Records without scores sort as average zero. Ties preserve prior order.
func (ro *Roster) SortBy(key SortKey, ascending bool) {
	less := func(a, b Record) int {
		switch key {
		case SortByAverage:
			avgA, _ := a.Average()
			avgB, _ := b.Average()
			return cmp.Compare(avgA, avgB)
		default:
			return cmp.Compare(a.Name, b.Name)
		}
	}
	slices.SortStableFunc(ro.records, func(a, b Record) int {
		c := less(a, b)
		if !ascending {
			c = -c
		}
		return c
	})
}

// Subjects returns the sorted union of subject names across all records
func (ro *Roster) Subjects() []string {
	seen := make(map[string]struct{})
	for _, rec := range ro.records {
		for subject := range rec.Scores {
			seen[subject] = struct{}{}
		}
	}
	subjects := make([]string, 0, len(seen))
	for subject := range seen {
		subjects = append(subjects, subject)
	}
	slices.Sort(subjects)
	return subjects
}

// Replace swaps the roster contents for the given records, validating and
// normalizing each. On error the roster is left unchanged.
func (ro *Roster) Replace(records []Record) error {
	replacement, err := RosterOf(records)
	if err != nil {
		return err
	}
	ro.records = replacement.records
	return nil
}
