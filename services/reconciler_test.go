package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-merger/models"
)

func sourceTable(path string, cols ...string) models.SourceTable {
	return models.SourceTable{Source: models.NewSourceFile(path), Table: tableOf(cols)}
}

func TestReconcileReportsMissingAndExtra(t *testing.T) {
	r := NewReconciler(newTestLogger())
	tables := []models.SourceTable{
		sourceTable("data/city_a.csv", "id", "price", "city"),
		sourceTable("data/city_b.csv", "id", "price", "rating", "city"),
		sourceTable("data/city_c.csv", "id", "city"),
		sourceTable("data/city_d.csv", "price", "id", "city"),
	}

	got := r.Reconcile(tables)

	require.Len(t, got, 2)
	assert.Equal(t, "city_b.csv", got[0].Source)
	assert.Empty(t, got[0].Missing)
	assert.Equal(t, []string{"rating"}, got[0].Extra)
	assert.Equal(t, "city_c.csv", got[1].Source)
	assert.Equal(t, []string{"price"}, got[1].Missing)
	assert.Empty(t, got[1].Extra)
}

func TestReconcileSingleTable(t *testing.T) {
	r := NewReconciler(newTestLogger())
	assert.Nil(t, r.Reconcile([]models.SourceTable{sourceTable("a.csv", "id")}))
	assert.Nil(t, r.Reconcile(nil))
}
