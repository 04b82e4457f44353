package service

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"gradebook/internal/codec"
	"gradebook/internal/config"
	"gradebook/internal/domain"
	"gradebook/internal/stats"
	"gradebook/internal/store"
)

// RosterService provides the business logic for roster operations. It owns
// score-range validation, wires the store to the codecs for import/export,
// and logs every mutation.
type RosterService struct {
	store  store.Store
	cfg    *config.Config
	logger *zap.Logger
}

// NewRosterService creates a new roster service
func NewRosterService(st store.Store, cfg *config.Config, logger *zap.Logger) *RosterService {
	return &RosterService{
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
}

// checkScores validates every score against the configured range
func (s *RosterService) checkScores(scores map[string]float64) error {
	for subject, score := range scores {
		if err := s.cfg.CheckScore(score); err != nil {
			return fmt.Errorf("subject %q: %w: %w", subject, domain.ErrInvalidRecord, err)
		}
	}
	return nil
}

// AddStudent validates and appends a new record
func (s *RosterService) AddStudent(ctx context.Context, name string, scores map[string]float64) (domain.Record, error) {
	if err := s.checkScores(scores); err != nil {
		return domain.Record{}, err
	}

	added, err := s.store.Add(ctx, domain.Record{Name: name, Scores: scores})
	if err != nil {
		return domain.Record{}, err
	}

	s.logger.Info("added student",
		zap.String("name", added.Name),
		zap.String("id", added.ID),
		zap.Int("subjects", len(added.Scores)))
	return added, nil
}

// UpdateStudent replaces the scores of the first record matching name
func (s *RosterService) UpdateStudent(ctx context.Context, name string, scores map[string]float64) (domain.Record, error) {
	if err := s.checkScores(scores); err != nil {
		return domain.Record{}, err
	}

	updated, err := s.store.Update(ctx, name, scores)
	if err != nil {
		return domain.Record{}, err
	}

	s.logger.Info("updated student",
		zap.String("name", name),
		zap.Int("subjects", len(scores)))
	return updated, nil
}

// DeleteStudent removes all records matching name and returns the count
func (s *RosterService) DeleteStudent(ctx context.Context, name string) (int, error) {
	removed, err := s.store.Delete(ctx, name)
	if err != nil {
		return 0, err
	}

	s.logger.Info("deleted student",
		zap.String("name", name),
		zap.Int("removed", removed))
	return removed, nil
}

// FindStudents returns all records whose name matches exactly
func (s *RosterService) FindStudents(ctx context.Context, name string) ([]domain.Record, error) {
	return s.store.Find(ctx, name)
}

// SearchStudents returns all records whose name contains query, ignoring case
func (s *RosterService) SearchStudents(ctx context.Context, query string) ([]domain.Record, error) {
	return s.store.Search(ctx, query)
}

// ListStudents returns all records in roster order
func (s *RosterService) ListStudents(ctx context.Context) ([]domain.Record, error) {
	return s.store.List(ctx)
}

// Sort stably reorders the persisted roster
func (s *RosterService) Sort(ctx context.Context, key domain.SortKey, ascending bool) error {
	if err := s.store.SortBy(ctx, key, ascending); err != nil {
		return err
	}
	s.logger.Info("sorted roster",
		zap.String("key", string(key)),
		zap.Bool("ascending", ascending))
	return nil
}

// ListSorted returns a sorted view of the roster without persisting the
// order. A positive top limits the result to the first top records.
func (s *RosterService) ListSorted(ctx context.Context, key domain.SortKey, ascending bool, top int) ([]domain.Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := domain.RosterOf(records)
	if err != nil {
		return nil, err
	}
	roster.SortBy(key, ascending)

	sorted := roster.Records()
	if top > 0 && top < len(sorted) {
		sorted = sorted[:top]
	}
	return sorted, nil
}

// Statistics summarizes all individual scores across the roster
func (s *RosterService) Statistics(ctx context.Context) (*stats.Summary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.SummarizeRoster(records)
}

// StudentStatistics summarizes the scores of the first record matching name
func (s *RosterService) StudentStatistics(ctx context.Context, name string) (*stats.Summary, error) {
	matches, err := s.store.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("stats for %q: %w", name, domain.ErrNotFound)
	}

	scores := stats.Pool(matches[:1])
	return stats.Summarize(scores)
}

// Export writes the roster to path in the format implied by its extension
// (or forced via format) and returns the number of records written.
func (s *RosterService) Export(ctx context.Context, path, format string) (int, error) {
	c, err := s.codecFor(path, format)
	if err != nil {
		return 0, err
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}

	if err := c.Export(records, f); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("flush export file: %w", err)
	}

	s.logger.Info("exported roster",
		zap.String("path", path),
		zap.String("format", c.Format()),
		zap.Int("records", len(records)))
	return len(records), nil
}

// Import reads records from path and loads them into the store. With replace
// set the current roster is discarded first; otherwise records are appended.
// A parse or validation failure aborts before the store is touched.
func (s *RosterService) Import(ctx context.Context, path, format string, replace bool) (int, error) {
	c, err := s.codecFor(path, format)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	records, err := c.Parse(f)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := s.checkScores(rec.Scores); err != nil {
			return 0, fmt.Errorf("record %q: %w", rec.Name, err)
		}
	}

	n, err := s.store.ImportRecords(ctx, records, replace)
	if err != nil {
		return 0, err
	}

	s.logger.Info("imported roster",
		zap.String("path", path),
		zap.String("format", c.Format()),
		zap.Int("records", n),
		zap.Bool("replace", replace))
	return n, nil
}

func (s *RosterService) codecFor(path, format string) (codec.Codec, error) {
	if format != "" {
		return codec.ForFormat(format)
	}
	return codec.ForPath(path)
}
