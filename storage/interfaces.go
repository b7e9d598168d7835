package storage

import (
	"context"

	"airbnb-merger/models"
)

// TableReader is the interface any tabular file parser must satisfy.
type TableReader interface {
	Read(path string) (*models.Table, error)
}

// TableWriter persists the merged table as a file and reports the paths it
// produced.
type TableWriter interface {
	Write(t *models.Table) ([]string, error)
}

// TableExporter pushes the merged table to an external store.
type TableExporter interface {
	Export(ctx context.Context, t *models.Table, runID string) error
	Close() error
}
