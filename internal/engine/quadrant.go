package engine

import "github.com/chrisdamba/menusight/internal/models"

func quadrantFor(highVolume, highMargin bool) string {
	switch {
	case highVolume && highMargin:
		return models.QuadrantHighVolumeHighMargin
	case highVolume:
		return models.QuadrantHighVolumeLowMargin
	case highMargin:
		return models.QuadrantLowVolumeHighMargin
	default:
		return models.QuadrantLowVolumeLowMargin
	}
}

// RunQuadrantAnalysis splits items into four buckets by volume and margin
// relative to the medians of the given rows. The volume median considers only
// items that sold, the margin median only defined margins. Ties classify as
// "high" so the median item never falls between buckets. The medians are
// recomputed from the row set on every call; there is no persisted baseline.
func RunQuadrantAnalysis(rows []models.ItemMarginRow) []models.QuadrantItem {
	var volumes, margins []float64
	for _, r := range rows {
		if r.UnitsSold > 0 {
			volumes = append(volumes, r.UnitsSold)
		}
		if r.GrossMarginPct.Valid {
			margins = append(margins, r.GrossMarginPct.Pct)
		}
	}
	volMedian := Median(volumes)
	marginMedian := Median(margins)

	items := make([]models.QuadrantItem, 0, len(rows))
	for _, r := range rows {
		highVolume := r.UnitsSold >= volMedian
		highMargin := r.GrossMarginPct.Valid && r.GrossMarginPct.Pct >= marginMedian
		items = append(items, models.QuadrantItem{
			ItemName:           r.ItemName,
			Quadrant:           quadrantFor(highVolume, highMargin),
			UnitsSold:          r.UnitsSold,
			Revenue:            r.Revenue,
			GrossMarginPct:     r.GrossMarginPct,
			ContributionMargin: r.ContributionMargin,
		})
	}
	return items
}
