package storage

import (
	"fmt"
	"strings"

	"airbnb-merger/models"
)

// naValues are the cell spellings read as null, matching what common
// dataframe tooling treats as missing on input.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// parseCell maps a raw field to a table value.
func parseCell(raw string) (s string, valid bool) {
	if _, na := naValues[raw]; na {
		return "", false
	}
	return raw, true
}

// normalizeHeader names blank headers "Unnamed: N" and suffixes repeated
// names with ".1", ".2", ... so every column name is unique.
func normalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := used[name]; dup {
			base := name
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s.%d", base, n)
				if _, taken := used[candidate]; !taken {
					name = candidate
					break
				}
			}
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// buildTable turns raw records into a Table. The first non-blank record is
// the header. With widen set, rows longer than the header add "Unnamed"
// columns; otherwise they are an error.
func buildTable(records [][]string, widen bool) (*models.Table, error) {
	start := 0
	for start < len(records) && isBlankRecord(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, fmt.Errorf("no header row found")
	}

	header := records[start]
	body := records[start+1:]

	if widen {
		width := len(header)
		for _, rec := range body {
			if len(rec) > width {
				width = len(rec)
			}
		}
		for len(header) < width {
			header = append(header, "")
		}
	}

	t := models.NewTable(normalizeHeader(header))
	for i, rec := range body {
		row := make(models.Row, len(rec))
		for j, raw := range rec {
			if s, ok := parseCell(raw); ok {
				row[j] = models.Str(s)
			}
		}
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("data row %d: %w", i+1, err)
		}
	}
	return t, nil
}
