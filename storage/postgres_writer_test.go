package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-merger/models"
)

func TestMigrationStatements(t *testing.T) {
	stmts := migrationStatements("listings_merged", []string{"id", "Price (USD)", "city"})
	require.Len(t, stmts, 2)

	assert.Equal(t, `DROP TABLE IF EXISTS "listings_merged"`, stmts[0])
	assert.True(t, strings.HasPrefix(stmts[1], `CREATE TABLE "listings_merged" (`))
	assert.Contains(t, stmts[1], `"Price (USD)" TEXT`)
	assert.Contains(t, stmts[1], `"merge_run_id" TEXT NOT NULL`)
}

func TestBatchSize(t *testing.T) {
	assert.Equal(t, maxBatchRows, batchSize(4))
	assert.Equal(t, maxBindParams/1000, batchSize(1000))
	assert.Equal(t, 1, batchSize(maxBindParams+1))
	assert.Equal(t, maxBatchRows, batchSize(0))
}

func TestCheckStoredRows(t *testing.T) {
	assert.NoError(t, checkStoredRows(3, 3))
	assert.NoError(t, checkStoredRows(0, 0))

	err := checkStoredRows(2, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stored 2 rows, expected 3")
}

func TestInsertStatement(t *testing.T) {
	rows := []models.Row{
		{models.Str("1"), models.Null()},
		{models.Str("2"), models.Str("Lisbon")},
	}
	query, args := insertStatement("t", []string{"id", "city"}, rows, "run-1")

	assert.Equal(t, `INSERT INTO "t" ("id", "city", "merge_run_id") VALUES ($1,$2,$3),($4,$5,$6)`, query)
	require.Len(t, args, 6)
	assert.Equal(t, models.Str("1"), args[0])
	assert.Equal(t, models.Null(), args[1])
	assert.Equal(t, "run-1", args[2])
	assert.Equal(t, "run-1", args[5])
}
