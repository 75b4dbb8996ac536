package seed

import (
	"testing"

	"emoshown/internal/analytics"
	. "emoshown/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_LinesUpWithBaseline(t *testing.T) {
	catalog := Catalog()

	activities := analytics.FilterByKind(ToCatalog(catalog), analytics.KindActivity)
	require.Len(t, activities, len(analytics.BaselineActivityIDs))
	for i, id := range analytics.BaselineActivityIDs {
		assert.Equal(t, id, activities[i].ID)
	}

	matrix, target := analytics.BuildUserActivityMatrix(activities, nil)
	assert.Equal(t, len(analytics.BaselineAffinity), target)
	assert.Equal(t, analytics.BaselineAffinity[0], matrix.Rows[0])
}

func TestCatalog_EntriesAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for i, activity := range Catalog() {
		assert.False(t, seen[activity.ID], "duplicate id %s", activity.ID)
		seen[activity.ID] = true

		assert.Equal(t, i+1, activity.Position)
		assert.NotEmpty(t, activity.Title)
		assert.NotEmpty(t, activity.EmotionalImpact, activity.ID)

		if activity.Kind == string(analytics.KindResource) {
			assert.NotEmpty(t, activity.Link, activity.ID)
		}
	}
}

func TestCatalog_EveryBandHasSomething(t *testing.T) {
	catalog := ToCatalog(Catalog())
	for _, band := range []analytics.ImpactTag{analytics.ImpactPositive, analytics.ImpactNeutral, analytics.ImpactNegative} {
		matches := 0
		for _, activity := range catalog {
			if activity.HasTag(band) {
				matches++
			}
		}
		assert.Positive(t, matches, band)
	}
}
