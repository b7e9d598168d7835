package services

import (
	"strconv"
	"strings"

	"airbnb-merger/models"
	"airbnb-merger/utils"
)

// CleanResult is the outcome of a cleaning pass.
type CleanResult struct {
	Table            *models.Table
	EmptyRowsRemoved int
	TextColumns      []string
}

// Cleaner drops empty records and trims text columns.
type Cleaner struct {
	logger       *utils.Logger
	sourceColumn string
}

// NewCleaner creates a Cleaner. The sourceColumn is ignored when deciding
// whether a row is empty, since every row carries a label.
func NewCleaner(logger *utils.Logger, sourceColumn string) *Cleaner {
	return &Cleaner{logger: logger, sourceColumn: sourceColumn}
}

// Clean removes rows whose data columns are all null, then strips
// leading/trailing whitespace from every text column. Values in numeric or
// boolean columns are left alone. The input table is not modified.
func (c *Cleaner) Clean(t *models.Table) CleanResult {
	labelIdx := t.ColumnIndex(c.sourceColumn)

	keep := make([]bool, t.Len())
	for i, r := range t.Rows {
		keep[i] = !isEmptyRow(r, labelIdx)
	}
	out := t.Filter(keep)
	for i, r := range out.Rows {
		out.Rows[i] = append(models.Row(nil), r...)
	}
	removed := t.Len() - out.Len()
	if removed > 0 {
		c.logger.Info("[cleaner] Dropped %d empty rows", removed)
	}

	var textCols []string
	for idx, name := range out.Columns {
		if !isTextColumn(out, idx) {
			continue
		}
		textCols = append(textCols, name)
		for _, r := range out.Rows {
			if r[idx].Valid {
				r[idx].String = strings.TrimSpace(r[idx].String)
			}
		}
	}

	c.logger.Info("[cleaner] Cleaned %d → %d rows, trimmed %d text columns",
		t.Len(), out.Len(), len(textCols))
	return CleanResult{Table: out, EmptyRowsRemoved: removed, TextColumns: textCols}
}

func isEmptyRow(r models.Row, skip int) bool {
	for i, v := range r {
		if i == skip {
			continue
		}
		if v.Valid {
			return false
		}
	}
	return true
}

// isTextColumn reports whether any present value in column idx is free-form
// text rather than a number or a boolean.
func isTextColumn(t *models.Table, idx int) bool {
	for _, r := range t.Rows {
		v := r[idx]
		if !v.Valid {
			continue
		}
		if !isScalar(v.String) {
			return true
		}
	}
	return false
}

func isScalar(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}
