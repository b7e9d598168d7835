package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-merger/models"
)

func sampleTable(rows int) *models.Table {
	t := models.NewTable([]string{"id", "name", "city"})
	for i := 0; i < rows; i++ {
		_ = t.AppendRow(models.Row{
			models.Str(strings.Repeat("9", 6)),
			models.Str("Cosy flat, near the river"),
			models.Str("Lisbon"),
		})
	}
	_ = t.AppendRow(models.Row{models.Str("last"), models.Null(), models.Str("Porto")})
	return t
}

func TestGzipPath(t *testing.T) {
	assert.Equal(t, "out/airbnb_complete.csv.gz", GzipPath("out/airbnb_complete.csv"))
	assert.Equal(t, "out/data.CSV.gz", GzipPath("out/data.CSV"))
	assert.Equal(t, "out/data.txt.gz", GzipPath("out/data.txt"))
}

func TestCSVWriterCreatesDirsAndNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "merged.csv")
	w := NewCSVWriter(path)

	paths, err := w.Write(sampleTable(1))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,city", lines[0])
	assert.Equal(t, `999999,"Cosy flat, near the river",Lisbon`, lines[1])
	assert.Equal(t, "last,,Porto", lines[2])

	_, err = os.Stat(GzipPath(path))
	assert.True(t, os.IsNotExist(err), "small output must not be compressed")
}

func TestCSVWriterCompressesLargeOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airbnb_complete.csv")
	w := &CSVWriter{Path: path, Threshold: 1024}

	paths, err := w.Write(sampleTable(200))
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, path, paths[0])
	assert.Equal(t, filepath.Join(filepath.Dir(path), "airbnb_complete.csv.gz"), paths[1])

	plain, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	unpacked, err := io.ReadAll(zr)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(plain, unpacked), "decompressed copy must match the CSV byte for byte")
}

func TestCSVWriterThresholdDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{Path: path, Threshold: 0}

	paths, err := w.Write(sampleTable(200))
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestRoundTripThroughReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.csv")
	src := sampleTable(2)
	_, err := NewCSVWriter(path).Write(src)
	require.NoError(t, err)

	got, err := NewCSVReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, src.Columns, got.Columns)
	assert.Equal(t, src.Len(), got.Len())
	assert.False(t, got.Rows[2][1].Valid)
}
