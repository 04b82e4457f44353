// Package codec converts rosters to and from interchange formats.
//
// Each format implements the Importer and Exporter interfaces over
// io.Reader/io.Writer so the caller decides where the bytes live. The
// tabular formats (CSV, XLSX) share one column convention: a header of
// "name" followed by the sorted union of subjects observed across all
// records, with an empty cell where a record has no score for a subject.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gradebook/internal/domain"
)

// Importer parses roster records from a serialized format
type Importer interface {
	Parse(r io.Reader) ([]domain.Record, error)
	Format() string
}

// Exporter writes roster records in a serialized format
type Exporter interface {
	Export(records []domain.Record, w io.Writer) error
	Format() string
}

// Codec is a format that supports both directions
type Codec interface {
	Importer
	Exporter
}

// ForPath selects a codec from a file path's extension
func ForPath(path string) (Codec, error) {
	return ForFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ForFormat selects a codec by format name (csv, json, yaml, xlsx)
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "csv":
		return NewCSVCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "xlsx":
		return NewXLSXCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
