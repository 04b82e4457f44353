package domain

import (
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
)

// Band represents a qualitative performance label derived from an average score
type Band string

const (
	BandExcellent Band = "Excellent"
	BandGood      Band = "Good"
	BandAverage   Band = "Average"
	BandNeedsWork Band = "Needs Improvement"
)

// BandFor maps an average score to its performance band
func BandFor(average float64) Band {
	switch {
	case average >= 90:
		return BandExcellent
	case average >= 75:
		return BandGood
	case average >= 50:
		return BandAverage
	default:
		return BandNeedsWork
	}
}

// Record represents a single student's grades, keyed by subject name.
// Name is the natural key for lookups; duplicates are permitted, so each
// record also carries a generated ID to stay distinguishable.
type Record struct {
	ID     string             `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string             `json:"name" yaml:"name"`
	Scores map[string]float64 `json:"scores" yaml:"scores"`
}

// NewRecord creates a record with a fresh ID and an initialized scores map
func NewRecord(name string) *Record {
	return &Record{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Scores: make(map[string]float64),
	}
}

// Normalize fills in a missing ID and scores map. Records arriving from
// imports or hand-edited files may lack either.
func (r *Record) Normalize() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Scores == nil {
		r.Scores = make(map[string]float64)
	}
}

// Validate checks the record invariant: a non-blank name. The scores map may
// be empty but a normalized record never has a nil one.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidRecord)
	}
	return nil
}

// SetScore sets the score for a subject
func (r *Record) SetScore(subject string, score float64) {
	if r.Scores == nil {
		r.Scores = make(map[string]float64)
	}
	r.Scores[subject] = score
}

// Score returns the score for a subject
func (r *Record) Score(subject string) (float64, bool) {
	if r.Scores == nil {
		return 0, false
	}
	score, ok := r.Scores[subject]
	return score, ok
}

// Average returns the arithmetic mean of the record's scores and false when
// the record has no scores yet.
func (r *Record) Average() (float64, bool) {
	if len(r.Scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, score := range r.Scores {
		sum += score
	}
	return sum / float64(len(r.Scores)), true
}

// Clone returns a deep copy so callers can hand out read-only views without
// sharing the scores map.
func (r Record) Clone() Record {
	r.Scores = maps.Clone(r.Scores)
	return r
}
