package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"airbnb-merger/models"
)

// CSVReader parses comma-delimited files with a header row.
type CSVReader struct {
	Comma rune
}

// NewCSVReader returns a reader for comma-delimited input.
func NewCSVReader() *CSVReader {
	return &CSVReader{Comma: ','}
}

// Read opens path and parses it into a Table.
func (r *CSVReader) Read(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	t, err := r.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("csv: parse %q: %w", path, err)
	}
	return t, nil
}

// ReadFrom parses CSV data from in. A leading byte order mark is honoured
// and removed. Short rows are padded with nulls; rows with more fields than
// the header are rejected.
func (r *CSVReader) ReadFrom(in io.Reader) (*models.Table, error) {
	decoded := transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	return buildTable(records, false)
}
