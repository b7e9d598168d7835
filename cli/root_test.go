package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-merger/config"
	"airbnb-merger/services"
)

func TestFlagsOverrideConfig(t *testing.T) {
	cfg := &config.Config{InputDir: "data/", OutputPath: "out.csv", SourceColumn: "city", CompressThresholdMB: 25}
	cmd := NewRootCmd(cfg)

	require.NoError(t, cmd.ParseFlags([]string{
		"--input", "/srv/raw", "-o", "/tmp/all.csv", "--id-column", "listing_id",
		"--compress-threshold-mb", "10", "--postgres", "-v",
	}))

	assert.Equal(t, "/srv/raw", cfg.InputDir)
	assert.Equal(t, "/tmp/all.csv", cfg.OutputPath)
	assert.Equal(t, "listing_id", cfg.IDColumn)
	assert.Equal(t, 10, cfg.CompressThresholdMB)
	assert.True(t, cfg.ExportPostgres)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "city", cfg.SourceColumn)
}

func TestRunEndToEnd(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "city_a.csv"), []byte("id,price\n1,100\n1,100\n"), 0644))
	out := filepath.Join(t.TempDir(), "processed", "airbnb_complete.csv")

	cfg := &config.Config{SourceColumn: "city", CompressThresholdMB: 25, PreviewRows: 3}
	cmd := NewRootCmd(cfg)
	cmd.SetArgs([]string{"--input", in, "--output", out})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "id,price,city\n1,100,City A\n", string(data))
}

func TestRunNoInput(t *testing.T) {
	cfg := &config.Config{SourceColumn: "city"}
	cmd := NewRootCmd(cfg)
	cmd.SetArgs([]string{"--input", t.TempDir(), "--output", filepath.Join(t.TempDir(), "x.csv")})

	err := cmd.Execute()
	assert.ErrorIs(t, err, services.ErrNoInputFiles)
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := NewRootCmd(&config.Config{})
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}
