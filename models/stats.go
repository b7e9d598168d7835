package models

// MergeStats holds the counters of a single merge run.
type MergeStats struct {
	FilesFound   int
	FilesLoaded  int
	FilesSkipped int

	OriginalRows      int
	RowsAfterDedup    int
	DuplicatesRemoved int
	EmptyRowsRemoved  int
	TextColumnsClean  int
	FinalRows         int

	// IDColumn is empty when duplicates were matched on the full row.
	IDColumn string
}

// ColumnMismatch describes how a table's header differs from the first one.
type ColumnMismatch struct {
	Source  string
	Missing []string
	Extra   []string
}

// SourceCount is the number of rows carrying one source label.
type SourceCount struct {
	Label string
	Rows  int
}

// ColumnMissing is the null count of one column.
type ColumnMissing struct {
	Column  string
	Missing int
	Percent float64
}

// Report holds the read-only summary computed over the final table.
type Report struct {
	RunID        string
	TotalRows    int
	TotalColumns int
	SourceCount  int
	RowsBySource []SourceCount
	Columns      []string
	Missing      []ColumnMissing
	Preview      *Table
	Stats        MergeStats
}
