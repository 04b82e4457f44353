package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"gradebook/internal/domain"
)

// JSONCodec handles JSON import/export: an array of record objects, the same
// shape the jsonfile store persists.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports records from JSON
func (c *JSONCodec) Parse(r io.Reader) ([]domain.Record, error) {
	var records []domain.Record
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse JSON: %w: %v", domain.ErrCorruptData, err)
	}
	return records, nil
}

// Export writes records as an indented JSON array
func (c *JSONCodec) Export(records []domain.Record, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
