package services

import (
	"strings"

	"github.com/zeebo/xxh3"

	"airbnb-merger/models"
	"airbnb-merger/utils"
)

// IDCandidates are the identifier column names probed, in priority order,
// when no identifier column is configured.
var IDCandidates = []string{"id", "listing_id", "property_id", "airbnb_id"}

// DedupResult is the outcome of a deduplication pass.
type DedupResult struct {
	Table    *models.Table
	Before   int
	After    int
	Removed  int
	IDColumn string
}

// Deduplicator removes repeated records, keeping the first occurrence.
type Deduplicator struct {
	logger     *utils.Logger
	candidates []string
}

func NewDeduplicator(logger *utils.Logger) *Deduplicator {
	return &Deduplicator{logger: logger, candidates: IDCandidates}
}

// ResolveIDColumn picks the identifier column of t. An override that exists
// wins; otherwise the candidates are probed in order. Names match exactly
// first, then case-insensitively. It returns "" when nothing matches.
func (d *Deduplicator) ResolveIDColumn(t *models.Table, override string) string {
	override = strings.TrimSpace(override)
	if override != "" {
		if col := matchColumn(t, override); col != "" {
			return col
		}
		d.logger.Warn("[dedup] Identifier column %q not found, probing defaults %v", override, d.candidates)
	}
	for _, c := range d.candidates {
		if col := matchColumn(t, c); col != "" {
			return col
		}
	}
	return ""
}

func matchColumn(t *models.Table, name string) string {
	if t.HasColumn(name) {
		return name
	}
	for _, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return c
		}
	}
	return ""
}

// Dedup drops rows whose identifier value was already seen, or, without an
// identifier column, rows identical in every column to an earlier row.
func (d *Deduplicator) Dedup(t *models.Table, override string) DedupResult {
	idCol := d.ResolveIDColumn(t, override)

	var keep []bool
	if idCol != "" {
		d.logger.Info("[dedup] Removing duplicates by identifier column %q", idCol)
		keep = keepFirstByKey(t, t.ColumnIndex(idCol))
	} else {
		d.logger.Info("[dedup] No identifier column found, removing exact duplicate rows")
		keep = keepFirstExact(t)
	}

	out := t.Filter(keep)
	res := DedupResult{
		Table:    out,
		Before:   t.Len(),
		After:    out.Len(),
		Removed:  t.Len() - out.Len(),
		IDColumn: idCol,
	}
	if res.Removed == 0 {
		d.logger.Info("[dedup] No duplicates found")
	} else {
		d.logger.Info("[dedup] Removed %d duplicates (%d → %d rows)", res.Removed, res.Before, res.After)
	}
	return res
}

// keepFirstByKey marks the first row of each identifier value. Rows with a
// null or blank identifier are always kept.
func keepFirstByKey(t *models.Table, idx int) []bool {
	keep := make([]bool, t.Len())
	seen := make(map[string]struct{}, t.Len())
	for i, r := range t.Rows {
		v := r[idx]
		key := strings.TrimSpace(v.String)
		if !v.Valid || key == "" {
			keep[i] = true
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}
	return keep
}

// keepFirstExact marks the first row of each distinct full-row value. Rows
// are bucketed by hash and compared cell by cell within a bucket.
func keepFirstExact(t *models.Table) []bool {
	keep := make([]bool, t.Len())
	buckets := make(map[uint64][]int, t.Len())
	var buf []byte

	for i, r := range t.Rows {
		buf = appendRowKey(buf[:0], r)
		h := xxh3.Hash(buf)

		dup := false
		for _, j := range buckets[h] {
			if rowsEqual(t.Rows[j], r) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[h] = append(buckets[h], i)
		keep[i] = true
	}
	return keep
}

func appendRowKey(buf []byte, r models.Row) []byte {
	for _, v := range r {
		if v.Valid {
			buf = append(buf, 1)
			buf = append(buf, v.String...)
		} else {
			buf = append(buf, 0)
		}
		buf = append(buf, 0x1f)
	}
	return buf
}

func rowsEqual(a, b models.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
