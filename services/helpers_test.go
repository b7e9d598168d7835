package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"airbnb-merger/models"
	"airbnb-merger/utils"
)

func newTestLogger() *utils.Logger { return utils.NewDiscardLogger() }

// tableOf builds a table where "" cells are null.
func tableOf(columns []string, rows ...[]string) *models.Table {
	t := models.NewTable(columns)
	for _, r := range rows {
		row := make(models.Row, len(r))
		for i, v := range r {
			if v != "" {
				row[i] = models.Str(v)
			}
		}
		_ = t.AppendRow(row)
	}
	return t
}

func column(t *models.Table, name string) []string {
	var out []string
	for _, v := range t.Values(name) {
		if v.Valid {
			out = append(out, v.String)
		} else {
			out = append(out, "<null>")
		}
	}
	return out
}

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
