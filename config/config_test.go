package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DATA_DIR", "OUTPUT_FILE", "ID_COLUMN", "SOURCE_COLUMN",
		"COMPRESS_THRESHOLD_MB", "PREVIEW_ROWS", "LOG_DEBUG", "EXPORT_POSTGRES"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "data/", cfg.InputDir)
	assert.Equal(t, "processed_data/airbnb_complete.csv", cfg.OutputPath)
	assert.Equal(t, "", cfg.IDColumn)
	assert.Equal(t, "city", cfg.SourceColumn)
	assert.Equal(t, 25, cfg.CompressThresholdMB)
	assert.Equal(t, int64(25*1024*1024), cfg.CompressThresholdBytes())
	assert.Equal(t, 3, cfg.PreviewRows)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.ExportPostgres)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/raw")
	t.Setenv("ID_COLUMN", "listing_id")
	t.Setenv("COMPRESS_THRESHOLD_MB", "5")
	t.Setenv("EXPORT_POSTGRES", "true")
	t.Setenv("LOG_DEBUG", "1")

	cfg := FromEnv()
	assert.Equal(t, "/srv/raw", cfg.InputDir)
	assert.Equal(t, "listing_id", cfg.IDColumn)
	assert.Equal(t, 5, cfg.CompressThresholdMB)
	assert.True(t, cfg.ExportPostgres)
	assert.True(t, cfg.Debug)
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PREVIEW_ROWS", "three")
	t.Setenv("EXPORT_POSTGRES", "maybe")

	cfg := FromEnv()
	assert.Equal(t, 3, cfg.PreviewRows)
	assert.False(t, cfg.ExportPostgres)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "rentals", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=rentals sslmode=disable", cfg.DSN())
}
