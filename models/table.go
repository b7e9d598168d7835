package models

import (
	"database/sql"
	"fmt"
)

// Row is one record of a Table. A cell with Valid == false is null.
type Row []sql.NullString

// Table is an in-memory, row-oriented record table. Every row holds exactly
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given header.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Str wraps a present value.
func Str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// Null returns a null cell.
func Null() sql.NullString {
	return sql.NullString{}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is part of the header.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendRow adds a row, padding it with nulls up to the column count.
// Rows wider than the header are rejected.
func (t *Table) AppendRow(cells Row) error {
	if len(cells) > len(t.Columns) {
		return fmt.Errorf("table: row has %d fields, header has %d", len(cells), len(t.Columns))
	}
	row := make(Row, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return nil
}

// SetColumn assigns v to every row of column name, adding the column at the
// end of the header when it does not exist yet.
func (t *Table) SetColumn(name string, v sql.NullString) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		idx = len(t.Columns) - 1
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], Null())
		}
	}
	for i := range t.Rows {
		t.Rows[i][idx] = v
	}
}

// Filter returns a new table holding the rows whose mask entry is true.
// Rows are shared with the receiver, not copied.
func (t *Table) Filter(keep []bool) *Table {
	out := NewTable(t.Columns)
	out.Rows = make([]Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		if i < len(keep) && keep[i] {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Values returns the cells of column name in row order, or nil when the
// column does not exist.
func (t *Table) Values(name string) []sql.NullString {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]sql.NullString, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out
}

// Concat stacks tables into one, taking the outer union of their columns.
// Columns keep their first-appearance order; the column named last, when
// non-empty and present, is moved to the end. Cells a source table does not
// have are null. Row order follows the input order.
func Concat(tables []*Table, last string) *Table {
	var columns []string
	seen := make(map[string]struct{})
	hasLast := false
	for _, t := range tables {
		for _, c := range t.Columns {
			if last != "" && c == last {
				hasLast = true
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			columns = append(columns, c)
		}
	}
	if hasLast {
		columns = append(columns, last)
	}

	out := NewTable(columns)
	position := make(map[string]int, len(columns))
	for i, c := range columns {
		position[c] = i
	}

	total := 0
	for _, t := range tables {
		total += t.Len()
	}
	out.Rows = make([]Row, 0, total)

	for _, t := range tables {
		mapping := make([]int, len(t.Columns))
		for i, c := range t.Columns {
			mapping[i] = position[c]
		}
		for _, r := range t.Rows {
			row := make(Row, len(columns))
			for i, v := range r {
				row[mapping[i]] = v
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
