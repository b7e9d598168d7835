package storage

import (
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"airbnb-merger/models"
)

// ExcelReader parses the first worksheet of .xlsx workbooks.
type ExcelReader struct{}

// NewExcelReader returns an .xlsx reader.
func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// Read opens the workbook at path and parses its first sheet.
func (r *ExcelReader) Read(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: %q has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheets[0], err)
	}

	t, err := buildTable(rows, true)
	if err != nil {
		return nil, fmt.Errorf("xlsx: parse %q: %w", path, err)
	}
	return t, nil
}

// LegacyExcelReader parses the first worksheet of BIFF (.xls) workbooks.
type LegacyExcelReader struct {
	Charset string
}

// NewLegacyExcelReader returns an .xls reader decoding strings as UTF-8.
func NewLegacyExcelReader() *LegacyExcelReader {
	return &LegacyExcelReader{Charset: "utf-8"}
}

// Read opens the workbook at path and parses its first sheet. The decoder
// panics on some malformed files; those panics are returned as errors.
func (r *LegacyExcelReader) Read(path string) (t *models.Table, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t = nil
			err = fmt.Errorf("xls: parse %q: %v", path, rec)
		}
	}()

	wb, err := xls.Open(path, r.Charset)
	if err != nil {
		return nil, fmt.Errorf("xls: open %q: %w", path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("xls: %q has no sheets", path)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("xls: first sheet unreadable")
	}

	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		rec := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			rec[j] = row.Col(j)
		}
		records = append(records, rec)
	}

	t, err = buildTable(records, true)
	if err != nil {
		return nil, fmt.Errorf("xls: parse %q: %w", path, err)
	}
	return t, nil
}
