package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestExcelReaderFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city_b.xlsx")
	writeWorkbook(t, path, [][]any{
		{"id", "price", "rating"},
		{1, 80, 4.5},
		{2, 120, nil},
	})

	tbl, err := NewExcelReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "price", "rating"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "1", tbl.Rows[0][0].String)
	assert.Equal(t, "4.5", tbl.Rows[0][2].String)
	assert.False(t, tbl.Rows[1][2].Valid)
}

func TestExcelReaderRejectsGarbage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.xlsx", "this is not a zip archive")
	_, err := NewExcelReader().Read(path)
	assert.Error(t, err)
}

func TestLegacyExcelReaderRejectsGarbage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.xls", "plain text pretending to be BIFF")
	tbl, err := NewLegacyExcelReader().Read(path)
	assert.Error(t, err)
	assert.Nil(t, tbl)
}
