package models

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format identifies how a source file is parsed.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// FormatFromPath maps a file extension (case-insensitive) to a Format.
// ok is false for anything that is not a supported tabular file.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	case ".xls":
		return FormatXLS, true
	}
	return "", false
}

// SourceFile is an input file and the label stamped on each of its rows.
type SourceFile struct {
	Path   string
	Label  string
	Format Format
}

// NewSourceFile derives the label and format for path.
func NewSourceFile(path string) SourceFile {
	format, _ := FormatFromPath(path)
	return SourceFile{
		Path:   path,
		Label:  LabelFromPath(path),
		Format: format,
	}
}

// LabelFromPath turns "data/new_york-city.csv" into "New York City".
func LabelFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return cases.Title(language.Und).String(stem)
}

// SourceTable is a loaded file together with the table parsed from it.
type SourceTable struct {
	Source SourceFile
	Table  *Table
}
