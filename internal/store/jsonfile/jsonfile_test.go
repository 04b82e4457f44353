package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grades.json")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	s, err := Open(path)
	require.NoError(t, err, "missing file must open as an empty store")

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Opening must not create the file.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grades.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Open(path)
	require.ErrorIs(t, err, domain.ErrCorruptData)

	// The corrupt file must be left untouched for inspection.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "grades.json")

	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Add(ctx, domain.Record{Name: "Alice", Scores: map[string]float64{"math": 90, "art": 85}})
	require.NoError(t, err)
	_, err = s.Add(ctx, domain.Record{Name: "Bob", Scores: map[string]float64{"science": 72}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reloaded, err := Open(path)
	require.NoError(t, err)

	records, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, map[string]float64{"math": 90, "art": 85}, records[0].Scores)
	assert.Equal(t, "Bob", records[1].Name)
	assert.NotEmpty(t, records[0].ID, "persisted records carry their generated ID")
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and persists", func(t *testing.T) {
		s := newTestStore(t)
		added, err := s.Add(ctx, domain.Record{Name: "Alice"})
		require.NoError(t, err)
		assert.NotEmpty(t, added.ID)
		assert.NotNil(t, added.Scores)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, domain.Record{Name: "  "})
		require.ErrorIs(t, err, domain.ErrInvalidRecord)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Add(ctx, domain.Record{Name: "Alice"})
	require.NoError(t, err)
	_, err = s.Add(ctx, domain.Record{Name: "Alice"})
	require.NoError(t, err)

	found, err := s.Find(ctx, "Alice")
	require.NoError(t, err)
	assert.Len(t, found, 2, "find returns all duplicates")

	found, err = s.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, found, "find is case-sensitive")
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, name := range []string{"Alice", "Alicia", "Bob"} {
		_, err := s.Add(ctx, domain.Record{Name: name})
		require.NoError(t, err)
	}

	found, err := s.Search(ctx, "ALI")
	require.NoError(t, err)
	assert.Len(t, found, 2, "search is a case-insensitive substring match")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("update then find returns new scores", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, domain.Record{Name: "Alice", Scores: map[string]float64{"math": 50}})
		require.NoError(t, err)

		updated, err := s.Update(ctx, "Alice", map[string]float64{"math": 99})
		require.NoError(t, err)
		assert.Equal(t, 99.0, updated.Scores["math"])

		found, err := s.Find(ctx, "Alice")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, map[string]float64{"math": 99}, found[0].Scores)
	})

	t.Run("missing name", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Update(ctx, "Nobody", map[string]float64{"math": 1})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grades.json")
		s, err := Open(path)
		require.NoError(t, err)
		_, err = s.Add(ctx, domain.Record{Name: "Alice", Scores: map[string]float64{"math": 50}})
		require.NoError(t, err)
		_, err = s.Update(ctx, "Alice", map[string]float64{"math": 75})
		require.NoError(t, err)

		reloaded, err := Open(path)
		require.NoError(t, err)
		found, err := reloaded.Find(ctx, "Alice")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, 75.0, found[0].Scores["math"])
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete then find returns empty", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, domain.Record{Name: "Alice"})
		require.NoError(t, err)
		_, err = s.Add(ctx, domain.Record{Name: "Alice"})
		require.NoError(t, err)
		_, err = s.Add(ctx, domain.Record{Name: "Bob"})
		require.NoError(t, err)

		removed, err := s.Delete(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		found, err := s.Find(ctx, "Alice")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("missing name", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Delete(ctx, "Nobody")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSortBy(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "grades.json")
	s, err := Open(path)
	require.NoError(t, err)

	for _, name := range []string{"Bob", "Alice", "Carol"} {
		_, err := s.Add(ctx, domain.Record{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, s.SortBy(ctx, domain.SortByName, true))

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{records[0].Name, records[1].Name, records[2].Name})

	// Sort order survives a reopen.
	reloaded, err := Open(path)
	require.NoError(t, err)
	records, err = reloaded.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", records[0].Name)
}

func TestImportRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("replace", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, domain.Record{Name: "Old"})
		require.NoError(t, err)

		n, err := s.ImportRecords(ctx, []domain.Record{{Name: "New1"}, {Name: "New2"}}, true)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("merge", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, domain.Record{Name: "Old"})
		require.NoError(t, err)

		_, err = s.ImportRecords(ctx, []domain.Record{{Name: "New"}}, false)
		require.NoError(t, err)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("invalid record aborts without partial import", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Add(ctx, domain.Record{Name: "Old"})
		require.NoError(t, err)

		_, err = s.ImportRecords(ctx, []domain.Record{{Name: "OK"}, {Name: ""}}, false)
		require.ErrorIs(t, err, domain.ErrInvalidRecord)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "failed import must not leave partial state")
	})
}
