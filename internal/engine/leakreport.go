package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/chrisdamba/menusight/internal/models"
)

const (
	// bottomPct selects the bottom margin tier of items for the leak report.
	bottomPct = 20
	// strategicVolumePct is the volume percentile above which a low-margin
	// item is presumed a possible intentional loss leader.
	strategicVolumePct = 60
)

// BuildProfitLeakReport identifies the bottom-margin tier of items and
// estimates the profit forgone by pricing them below target margin. Items
// explicitly marked strategic, or selling at or above the 60th volume
// percentile, are classified as strategic candidates rather than problems to
// fix. Degenerate input degrades to a zero-valued report with an explanatory
// message; this function never fails.
func BuildProfitLeakReport(rows []models.ItemMarginRow, params models.AnalysisParams) models.ProfitLeakReport {
	var withMargin []models.ItemMarginRow
	for _, r := range rows {
		if r.Revenue > 0 && r.GrossMarginPct.Valid {
			withMargin = append(withMargin, r)
		}
	}
	if len(withMargin) == 0 {
		return models.ProfitLeakReport{
			Summary: models.ProfitLeakSummary{
				Message: "No items with margin data.",
			},
			Items:       []models.ProfitLeakItem{},
			GeneratedAt: time.Now().UTC(),
		}
	}

	sorted := make([]models.ItemMarginRow, len(withMargin))
	copy(sorted, withMargin)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GrossMarginPct.Pct < sorted[j].GrossMarginPct.Pct
	})

	cutoffIndex := int(math.Floor(float64(len(sorted)) * bottomPct / 100))
	if cutoffIndex > 0 {
		cutoffIndex--
	}
	marginThreshold := sorted[cutoffIndex].GrossMarginPct.Pct

	// Ties at the threshold are included on purpose, even beyond the strict
	// 20% count, so items tied with the cutoff item are not excluded.
	var bottomItems []models.ItemMarginRow
	for _, r := range sorted {
		if r.GrossMarginPct.Pct <= marginThreshold {
			bottomItems = append(bottomItems, r)
		}
	}

	volumes := make([]float64, 0, len(withMargin))
	for _, r := range withMargin {
		volumes = append(volumes, r.UnitsSold)
	}
	sort.Float64s(volumes)
	volumeAtStrategic := Percentile(volumes, strategicVolumePct)

	isStrategic := func(itemName string, unitsSold float64) bool {
		if _, ok := params.StrategicItems[itemName]; ok {
			return true
		}
		return unitsSold >= volumeAtStrategic
	}

	items := make([]models.ProfitLeakItem, 0, len(bottomItems))
	var totalLost, lostFromFix, lostFromStrategic float64
	var toFixCount, strategicCount int
	for _, r := range bottomItems {
		price := resolvePrice(r, params.MenuPriceOverrides)
		target := params.TargetMarginFor(r.ItemName)
		suggestion := SuggestPrice(r.CostPerServing, price, target)
		priceAtTarget := PriceAtTargetMargin(r.CostPerServing, target)
		potentialContribution := (priceAtTarget - r.CostPerServing) * r.UnitsSold
		lostProfit := math.Max(0, potentialContribution-r.ContributionMargin)

		role := models.LeakRoleToFix
		if isStrategic(r.ItemName, r.UnitsSold) {
			role = models.LeakRoleStrategic
		}

		item := models.ProfitLeakItem{
			ItemName:                    r.ItemName,
			CurrentMarginPct:            r.GrossMarginPct.Pct,
			UnitsSold:                   r.UnitsSold,
			Revenue:                     r.Revenue,
			CostPerServing:              r.CostPerServing,
			CurrentContribution:         r.ContributionMargin,
			SuggestedPrice:              suggestion.SuggestedPrice,
			PotentialContribution:       round2(potentialContribution),
			EstimatedLostProfitPerMonth: round2(lostProfit),
			Role:                        role,
		}
		items = append(items, item)

		// Accumulate on the rounded per-item values so the summary matches
		// what the rows display.
		totalLost += item.EstimatedLostProfitPerMonth
		if role == models.LeakRoleStrategic {
			lostFromStrategic += item.EstimatedLostProfitPerMonth
			strategicCount++
		} else {
			lostFromFix += item.EstimatedLostProfitPerMonth
			toFixCount++
		}
	}

	message := "No bottom-margin items in this dataset."
	if len(items) > 0 {
		message = fmt.Sprintf(
			"You're losing approximately $%.0f/month on %d SKU(s) by pricing below target margin.",
			math.Round(totalLost), len(items),
		)
	}

	return models.ProfitLeakReport{
		Summary: models.ProfitLeakSummary{
			BottomMarginSKUs:            len(items),
			EstimatedLostProfitPerMonth: round2(totalLost),
			LostFromItemsToFix:          round2(lostFromFix),
			LostFromStrategicCandidates: round2(lostFromStrategic),
			ItemsToFixCount:             toFixCount,
			StrategicCandidateCount:     strategicCount,
			Message:                     message,
		},
		Items:       items,
		GeneratedAt: time.Now().UTC(),
	}
}

// resolvePrice picks the effective current price for an item: the menu price
// override when present, else the row's price, else the average realized
// price, else zero.
func resolvePrice(row models.ItemMarginRow, overrides map[string]float64) float64 {
	if price, ok := overrides[row.ItemName]; ok {
		return price
	}
	if row.Price != nil {
		return *row.Price
	}
	if row.UnitsSold > 0 {
		return row.Revenue / row.UnitsSold
	}
	return 0
}
