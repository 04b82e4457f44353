package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"gradebook/internal/domain"
)

// CSVCodec handles RFC 4180 CSV import/export
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Format returns the codec format identifier
func (c *CSVCodec) Format() string {
	return "csv"
}

// Export writes one row per record under a "name,<subject...>" header
func (c *CSVCodec) Export(records []domain.Record, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := tableHeader(records)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	subjects := header[1:]
	for _, rec := range records {
		if err := writer.Write(tableRow(rec, subjects)); err != nil {
			return fmt.Errorf("write CSV row for %q: %w", rec.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Parse imports records from CSV with the same column convention
func (c *CSVCodec) Parse(r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	// Column count mismatches are reported per row as ErrMalformedRow.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV input: %w", domain.ErrMalformedRow)
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	subjects, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", line, err)
		}

		rec, err := parseRow(row, subjects, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
