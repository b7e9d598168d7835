package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"airbnb-merger/models"
	"airbnb-merger/storage"
	"airbnb-merger/utils"
)

// Loader finds tabular files in a directory and parses them into labelled
// tables.
type Loader struct {
	logger       *utils.Logger
	sourceColumn string
	readers      map[models.Format]storage.TableReader
}

// NewLoader creates a Loader that stamps each row's label into sourceColumn.
func NewLoader(logger *utils.Logger, sourceColumn string) *Loader {
	return &Loader{
		logger:       logger,
		sourceColumn: sourceColumn,
		readers: map[models.Format]storage.TableReader{
			models.FormatCSV:  storage.NewCSVReader(),
			models.FormatXLSX: storage.NewExcelReader(),
			models.FormatXLS:  storage.NewLegacyExcelReader(),
		},
	}
}

// Discover lists the .csv, .xlsx and .xls files directly inside dir, sorted
// by file name so that keep-first deduplication is reproducible.
func (l *Loader) Discover(dir string) ([]models.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: read dir %q: %w", dir, err)
	}

	var files []models.SourceFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := models.FormatFromPath(e.Name()); !ok {
			continue
		}
		files = append(files, models.NewSourceFile(filepath.Join(dir, e.Name())))
	}
	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
	})
	return files, nil
}

// Load parses one source file and sets its label on every row.
func (l *Loader) Load(src models.SourceFile) (*models.Table, error) {
	reader, ok := l.readers[src.Format]
	if !ok {
		return nil, fmt.Errorf("loader: unsupported file %q", src.Path)
	}
	t, err := reader.Read(src.Path)
	if err != nil {
		return nil, err
	}
	t.SetColumn(l.sourceColumn, models.Str(src.Label))
	return t, nil
}

// LoadAll loads every source, logging and skipping the ones that fail.
func (l *Loader) LoadAll(sources []models.SourceFile) []models.SourceTable {
	loaded := make([]models.SourceTable, 0, len(sources))
	for _, src := range sources {
		name := filepath.Base(src.Path)
		l.logger.Info("[loader] Loading %s...", name)

		t, err := l.Load(src)
		if err != nil {
			l.logger.Error("[loader] Skipping %s: %v", name, err)
			continue
		}
		l.logger.Info("[loader] %s: %d rows, %d columns (label %q)",
			name, t.Len(), len(t.Columns), src.Label)
		loaded = append(loaded, models.SourceTable{Source: src, Table: t})
	}
	return loaded
}
