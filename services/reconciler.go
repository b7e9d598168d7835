package services

import (
	"path/filepath"
	"sort"

	"airbnb-merger/models"
	"airbnb-merger/utils"
)

// Reconciler compares the headers of loaded tables against the first one.
// Mismatches are only reported; concatenation resolves them.
type Reconciler struct {
	logger *utils.Logger
}

func NewReconciler(logger *utils.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile returns one entry per table whose column set differs from the
// reference table's.
func (r *Reconciler) Reconcile(tables []models.SourceTable) []models.ColumnMismatch {
	if len(tables) < 2 {
		return nil
	}

	reference := columnSet(tables[0].Table.Columns)
	var mismatches []models.ColumnMismatch

	for _, st := range tables[1:] {
		current := columnSet(st.Table.Columns)
		m := models.ColumnMismatch{
			Source:  filepath.Base(st.Source.Path),
			Missing: difference(reference, current),
			Extra:   difference(current, reference),
		}
		if len(m.Missing) == 0 && len(m.Extra) == 0 {
			continue
		}
		r.logger.Warn("[reconciler] %s has different columns (missing: %v, extra: %v)",
			m.Source, m.Missing, m.Extra)
		mismatches = append(mismatches, m)
	}

	if len(mismatches) == 0 {
		r.logger.Debug("[reconciler] All %d files share the same columns", len(tables))
	}
	return mismatches
}

func columnSet(cols []string) map[string]struct{} {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	return set
}

// difference returns the sorted members of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for c := range a {
		if _, ok := b[c]; !ok {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
