package engine

import (
	"testing"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marginRow(name string, units, marginPct float64) models.ItemMarginRow {
	return models.ItemMarginRow{
		ItemName:       name,
		UnitsSold:      units,
		GrossMarginPct: models.DefinedMargin(marginPct),
	}
}

func quadrantsByName(items []models.QuadrantItem) map[string]string {
	out := make(map[string]string)
	for _, item := range items {
		out[item.ItemName] = item.Quadrant
	}
	return out
}

func TestRunQuadrantAnalysis(t *testing.T) {
	rows := []models.ItemMarginRow{
		marginRow("star", 100, 80),
		marginRow("workhorse", 90, 20),
		marginRow("puzzle", 10, 75),
		marginRow("dog", 5, 10),
	}

	got := quadrantsByName(RunQuadrantAnalysis(rows))

	assert.Equal(t, models.QuadrantHighVolumeHighMargin, got["star"])
	assert.Equal(t, models.QuadrantHighVolumeLowMargin, got["workhorse"])
	assert.Equal(t, models.QuadrantLowVolumeHighMargin, got["puzzle"])
	assert.Equal(t, models.QuadrantLowVolumeLowMargin, got["dog"])
}

func TestRunQuadrantAnalysisMedianTieGoesHigh(t *testing.T) {
	// the item sitting exactly on both medians lands in high/high
	rows := []models.ItemMarginRow{
		marginRow("low", 1, 10),
		marginRow("mid", 50, 40),
		marginRow("high", 100, 90),
	}

	got := quadrantsByName(RunQuadrantAnalysis(rows))
	assert.Equal(t, models.QuadrantHighVolumeHighMargin, got["mid"])
}

func TestRunQuadrantAnalysisSkipsUndefinedMarginsForMedian(t *testing.T) {
	rows := []models.ItemMarginRow{
		marginRow("a", 10, 40),
		marginRow("b", 20, 60),
		{ItemName: "unknown", UnitsSold: 30, GrossMarginPct: models.UndefinedMargin()},
	}

	items := RunQuadrantAnalysis(rows)
	got := quadrantsByName(items)

	// margin median is 50 (from a and b only); the undefined row can never
	// classify as high margin
	assert.Equal(t, models.QuadrantLowVolumeLowMargin, got["a"])
	assert.Equal(t, models.QuadrantHighVolumeHighMargin, got["b"])
	assert.Equal(t, models.QuadrantHighVolumeLowMargin, got["unknown"])
}

func TestRunQuadrantAnalysisZeroVolumeExcludedFromMedian(t *testing.T) {
	rows := []models.ItemMarginRow{
		marginRow("sold", 10, 50),
		marginRow("unsold", 0, 50),
	}

	got := quadrantsByName(RunQuadrantAnalysis(rows))
	// volume median is 10, computed over selling items only
	assert.Equal(t, models.QuadrantHighVolumeHighMargin, got["sold"])
	assert.Equal(t, models.QuadrantLowVolumeHighMargin, got["unsold"])
}

func TestRunQuadrantAnalysisEmpty(t *testing.T) {
	items := RunQuadrantAnalysis(nil)
	require.Empty(t, items)
}
