package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"gradebook/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlRecord represents the YAML structure for one student
type yamlRecord struct {
	ID     string             `yaml:"id,omitempty"`
	Name   string             `yaml:"name"`
	Scores map[string]float64 `yaml:"scores,omitempty"`
}

// Parse imports records from YAML
func (c *YAMLCodec) Parse(r io.Reader) ([]domain.Record, error) {
	var raw []yamlRecord
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w: %v", domain.ErrCorruptData, err)
	}

	records := make([]domain.Record, 0, len(raw))
	for _, yr := range raw {
		records = append(records, domain.Record{
			ID:     yr.ID,
			Name:   yr.Name,
			Scores: yr.Scores,
		})
	}
	return records, nil
}

// Export writes records as a YAML sequence
func (c *YAMLCodec) Export(records []domain.Record, w io.Writer) error {
	raw := make([]yamlRecord, 0, len(records))
	for _, rec := range records {
		raw = append(raw, yamlRecord{
			ID:     rec.ID,
			Name:   rec.Name,
			Scores: rec.Scores,
		})
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(raw); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}
