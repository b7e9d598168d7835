package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"airbnb-merger/models"
)

// DefaultCompressThreshold is the output size above which a gzip copy is
// written next to the CSV file.
const DefaultCompressThreshold int64 = 25 * 1024 * 1024

// CSVWriter writes a Table to a CSV file and, when the file grows past
// Threshold bytes, a gzip-compressed sibling. A Threshold <= 0 disables the
// compressed copy.
type CSVWriter struct {
	Path      string
	Threshold int64
}

// NewCSVWriter returns a writer for path using the default threshold.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{Path: path, Threshold: DefaultCompressThreshold}
}

// GzipPath derives the compressed sibling name by appending ".gz", so
// "x.csv" becomes "x.csv.gz" and the base name is kept as written.
func GzipPath(path string) string {
	return path + ".gz"
}

// Write serialises t (header row, no index column, nulls as empty fields).
// Intermediate directories are created automatically. It returns the paths
// written, the CSV first.
func (c *CSVWriter) Write(t *models.Table) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(c.Path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", c.Path, err)
	}
	if err := writeCSV(f, t); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("csv: close %q: %w", c.Path, err)
	}

	written := []string{c.Path}

	info, err := os.Stat(c.Path)
	if err != nil {
		return written, fmt.Errorf("csv: stat %q: %w", c.Path, err)
	}
	if c.Threshold > 0 && info.Size() > c.Threshold {
		gz := GzipPath(c.Path)
		if err := compressFile(c.Path, gz); err != nil {
			return written, err
		}
		written = append(written, gz)
	}
	return written, nil
}

func writeCSV(out io.Writer, t *models.Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, v := range r {
			if v.Valid {
				record[i] = v.String
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// compressFile gzips the bytes of src into dst.
func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("gzip: open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("gzip: create %q: %w", dst, err)
	}

	zw := gzip.NewWriter(out)
	zw.Name = filepath.Base(src)
	if _, err := io.Copy(zw, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("gzip: compress %q: %w", src, err)
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("gzip: finish %q: %w", dst, err)
	}
	return out.Close()
}
