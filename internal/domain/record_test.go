package domain

import (
	"errors"
	"testing"
)

func TestNewRecord(t *testing.T) {
	t.Run("creates record with defaults", func(t *testing.T) {
		rec := NewRecord("Alice")

		if rec.Name != "Alice" {
			t.Errorf("expected name 'Alice', got %s", rec.Name)
		}
		if rec.ID == "" {
			t.Error("expected ID to be generated")
		}
		if rec.Scores == nil {
			t.Error("expected Scores to be initialized")
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		rec := NewRecord("  Bob  ")
		if rec.Name != "Bob" {
			t.Errorf("expected trimmed name 'Bob', got %q", rec.Name)
		}
	})
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{"valid record", Record{Name: "Alice"}, false},
		{"blank name", Record{Name: ""}, true},
		{"whitespace name", Record{Name: "   "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestRecordNormalize(t *testing.T) {
	rec := Record{Name: "Alice"}
	rec.Normalize()

	if rec.ID == "" {
		t.Error("expected Normalize to generate an ID")
	}
	if rec.Scores == nil {
		t.Error("expected Normalize to initialize Scores")
	}

	id := rec.ID
	rec.Normalize()
	if rec.ID != id {
		t.Error("expected Normalize to keep an existing ID")
	}
}

func TestRecordSetGetScore(t *testing.T) {
	t.Run("set and get score", func(t *testing.T) {
		rec := NewRecord("Alice")
		rec.SetScore("math", 92.5)

		score, ok := rec.Score("math")
		if !ok {
			t.Fatal("expected score to exist")
		}
		if score != 92.5 {
			t.Errorf("expected 92.5, got %v", score)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		rec := NewRecord("Alice")
		if _, ok := rec.Score("history"); ok {
			t.Error("expected score not to exist")
		}
	})

	t.Run("set on nil map initializes map", func(t *testing.T) {
		rec := &Record{Name: "Alice"}
		rec.SetScore("math", 80)
		if rec.Scores == nil {
			t.Fatal("expected Scores to be initialized")
		}
		if rec.Scores["math"] != 80 {
			t.Errorf("expected 80, got %v", rec.Scores["math"])
		}
	})
}

func TestRecordAverage(t *testing.T) {
	t.Run("averages all subjects", func(t *testing.T) {
		rec := NewRecord("Alice")
		rec.SetScore("math", 90)
		rec.SetScore("science", 70)

		avg, ok := rec.Average()
		if !ok {
			t.Fatal("expected average to be defined")
		}
		if avg != 80 {
			t.Errorf("expected 80, got %v", avg)
		}
	})

	t.Run("no scores", func(t *testing.T) {
		rec := NewRecord("Alice")
		if _, ok := rec.Average(); ok {
			t.Error("expected average to be undefined for empty scores")
		}
	})
}

func TestRecordClone(t *testing.T) {
	rec := NewRecord("Alice")
	rec.SetScore("math", 90)

	clone := rec.Clone()
	clone.SetScore("math", 10)

	if score, _ := rec.Score("math"); score != 90 {
		t.Errorf("mutating clone changed original: got %v", score)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		average float64
		want    Band
	}{
		{95, BandExcellent},
		{90, BandExcellent},
		{89.9, BandGood},
		{75, BandGood},
		{74.9, BandAverage},
		{50, BandAverage},
		{49.9, BandNeedsWork},
		{0, BandNeedsWork},
	}

	for _, tt := range tests {
		if got := BandFor(tt.average); got != tt.want {
			t.Errorf("BandFor(%v) = %s, want %s", tt.average, got, tt.want)
		}
	}
}
