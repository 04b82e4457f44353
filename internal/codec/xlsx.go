package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gradebook/internal/domain"
)

// xlsxSheetName is the sheet grades are written to and read from
const xlsxSheetName = "Grades"

// XLSXCodec handles Excel spreadsheet import/export with the same column
// convention as the CSV codec.
type XLSXCodec struct{}

// NewXLSXCodec creates a new XLSX codec
func NewXLSXCodec() *XLSXCodec {
	return &XLSXCodec{}
}

// Format returns the codec format identifier
func (c *XLSXCodec) Format() string {
	return "xlsx"
}

// Export writes records to a single "Grades" sheet
func (c *XLSXCodec) Export(records []domain.Record, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := tableHeader(records)
	if err := writeXLSXRow(f, 1, header); err != nil {
		return err
	}

	subjects := header[1:]
	for i, rec := range records {
		if err := writeXLSXRow(f, i+2, tableRow(rec, subjects)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, row int, cells []string) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("locate cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

// Parse imports records from the first sheet of a workbook
func (c *XLSXCodec) Parse(r io.Reader) ([]domain.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w: %v", domain.ErrCorruptData, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook does not contain any sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet %s: %w", sheet, domain.ErrMalformedRow)
	}

	subjects, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	for i, row := range rows[1:] {
		// GetRows omits trailing empty cells, so short rows are padded back
		// to the header width. Rows wider than the header stay malformed.
		for len(row) < len(subjects)+1 {
			row = append(row, "")
		}
		rec, err := parseRow(row, subjects, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
