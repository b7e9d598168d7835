package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"airbnb-merger/models"
	"airbnb-merger/storage"
	"airbnb-merger/utils"
)

var (
	// ErrNoInputFiles means the input directory holds no supported files.
	ErrNoInputFiles = errors.New("no input files found")
	// ErrNoFilesLoaded means every candidate file failed to parse.
	ErrNoFilesLoaded = errors.New("no file could be loaded")
)

// MergeOptions selects what a Merger reads and how rows are keyed.
type MergeOptions struct {
	InputDir     string
	IDColumn     string
	SourceColumn string
}

// MergeResult is everything a run produced.
type MergeResult struct {
	RunID      string
	Table      *models.Table
	Stats      models.MergeStats
	Mismatches []models.ColumnMismatch
	Paths      []string
}

// Merger runs the load → reconcile → concatenate → dedup → clean → write
// pipeline once.
type Merger struct {
	opts     MergeOptions
	logger   *utils.Logger
	writer   storage.TableWriter
	exporter storage.TableExporter

	loader     *Loader
	reconciler *Reconciler
	dedup      *Deduplicator
	cleaner    *Cleaner
}

// NewMerger wires a Merger. exporter may be nil.
func NewMerger(opts MergeOptions, logger *utils.Logger, writer storage.TableWriter, exporter storage.TableExporter) *Merger {
	return &Merger{
		opts:       opts,
		logger:     logger,
		writer:     writer,
		exporter:   exporter,
		loader:     NewLoader(logger, opts.SourceColumn),
		reconciler: NewReconciler(logger),
		dedup:      NewDeduplicator(logger),
		cleaner:    NewCleaner(logger, opts.SourceColumn),
	}
}

// Run executes the pipeline. Files that fail to parse are skipped; a run
// with no candidate files or no loadable file writes nothing.
func (m *Merger) Run(ctx context.Context) (*MergeResult, error) {
	res := &MergeResult{RunID: uuid.NewString()}
	m.logger.Info("[merger] Run %s: scanning %s", res.RunID, m.opts.InputDir)

	sources, err := m.loader.Discover(m.opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoInputFiles, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, m.opts.InputDir)
	}
	res.Stats.FilesFound = len(sources)
	m.logger.Info("[merger] Found %d files", len(sources))

	loaded := m.loader.LoadAll(sources)
	res.Stats.FilesLoaded = len(loaded)
	res.Stats.FilesSkipped = len(sources) - len(loaded)
	if len(loaded) == 0 {
		return nil, fmt.Errorf("%w (%d attempted)", ErrNoFilesLoaded, len(sources))
	}

	res.Mismatches = m.reconciler.Reconcile(loaded)

	tables := make([]*models.Table, len(loaded))
	for i, st := range loaded {
		tables[i] = st.Table
	}
	combined := models.Concat(tables, m.opts.SourceColumn)
	res.Stats.OriginalRows = combined.Len()
	m.logger.Info("[merger] Combined %d rows, %d columns", combined.Len(), len(combined.Columns))

	deduped := m.dedup.Dedup(combined, m.opts.IDColumn)
	res.Stats.RowsAfterDedup = deduped.After
	res.Stats.DuplicatesRemoved = deduped.Removed
	res.Stats.IDColumn = deduped.IDColumn

	cleaned := m.cleaner.Clean(deduped.Table)
	res.Stats.EmptyRowsRemoved = cleaned.EmptyRowsRemoved
	res.Stats.TextColumnsClean = len(cleaned.TextColumns)
	res.Stats.FinalRows = cleaned.Table.Len()
	res.Table = cleaned.Table

	paths, err := m.writer.Write(res.Table)
	res.Paths = paths
	if err != nil {
		return res, err
	}
	for _, p := range paths {
		m.logger.Info("[merger] Saved %s", p)
	}

	if m.exporter != nil {
		if err := m.exporter.Export(ctx, res.Table, res.RunID); err != nil {
			m.logger.Error("[merger] Postgres export failed: %v", err)
		} else {
			m.logger.Info("[merger] Exported %d rows to PostgreSQL", res.Table.Len())
		}
	}

	return res, nil
}
