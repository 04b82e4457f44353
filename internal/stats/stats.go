// Package stats provides descriptive statistics over grade scores.
//
// The functions are pure: they take a slice of scores and never retain it.
// Roster-wide reductions pool every individual subject score across all
// records; the per-student reduction is explicit via RecordAverage.
package stats

import (
	"fmt"
	"maps"
	"slices"

	"gradebook/internal/domain"
)

// Average returns the arithmetic mean of scores
func Average(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("average: %w", domain.ErrEmptyInput)
	}
	var sum float64
	for _, score := range scores {
		sum += score
	}
	return sum / float64(len(scores)), nil
}

// Median returns the middle value of the sorted scores. For an even-length
// input it is the mean of the two central values. The input is not mutated.
func Median(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("median: %w", domain.ErrEmptyInput)
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Min returns the smallest score
func Min(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("min: %w", domain.ErrEmptyInput)
	}
	return slices.Min(scores), nil
}

// Max returns the largest score
func Max(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("max: %w", domain.ErrEmptyInput)
	}
	return slices.Max(scores), nil
}

// Summary bundles the descriptive statistics for a set of scores
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summarize computes all statistics in one pass over scores
func Summarize(scores []float64) (*Summary, error) {
	avg, err := Average(scores)
	if err != nil {
		return nil, err
	}
	med, err := Median(scores)
	if err != nil {
		return nil, err
	}
	low, err := Min(scores)
	if err != nil {
		return nil, err
	}
	high, err := Max(scores)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Count:   len(scores),
		Average: avg,
		Median:  med,
		Min:     low,
		Max:     high,
	}, nil
}

// Pool flattens every individual subject score across all records, in record
// order. This is the reduction roster-wide statistics operate on.
func Pool(records []domain.Record) []float64 {
	var scores []float64
	for _, rec := range records {
		for _, subject := range slices.Sorted(maps.Keys(rec.Scores)) {
			scores = append(scores, rec.Scores[subject])
		}
	}
	return scores
}

// RecordAverage reduces a single record to its average score
func RecordAverage(rec domain.Record) (float64, error) {
	avg, ok := rec.Average()
	if !ok {
		return 0, fmt.Errorf("record %q: %w", rec.Name, domain.ErrEmptyInput)
	}
	return avg, nil
}

// SummarizeRoster computes statistics over the pooled scores of all records
func SummarizeRoster(records []domain.Record) (*Summary, error) {
	return Summarize(Pool(records))
}
