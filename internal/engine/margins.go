package engine

import (
	"strings"

	"github.com/chrisdamba/menusight/internal/models"
)

type salesTotals struct {
	unitsSold float64
	revenue   float64
}

// aggregateSales groups records by trimmed item name, summing units and
// revenue. Trimming is the only normalization: names differing in case stay
// distinct. Returns the totals plus the insertion order of first occurrence.
func aggregateSales(records []models.SalesRecord) (map[string]salesTotals, []string) {
	totals := make(map[string]salesTotals)
	var order []string
	for _, r := range records {
		key := strings.TrimSpace(r.ItemName)
		existing, ok := totals[key]
		if !ok {
			order = append(order, key)
		}
		totals[key] = salesTotals{
			unitsSold: existing.unitsSold + r.UnitsSold,
			revenue:   existing.revenue + r.Revenue,
		}
	}
	return totals, order
}

// ComputeMargins aggregates sales by item and joins with per-serving cost to
// produce the per-item margin rows. Items missing from the cost map are
// treated as zero-cost (a deliberate simplification that inflates margin).
// Zero revenue yields a defined 0% margin, never an undefined one. Output
// preserves the input's first-occurrence order.
func ComputeMargins(records []models.SalesRecord, itemCosts map[string]float64) []models.ItemMarginRow {
	totals, order := aggregateSales(records)
	rows := make([]models.ItemMarginRow, 0, len(order))
	for _, itemName := range order {
		t := totals[itemName]
		costPerServing := itemCosts[itemName]
		totalCost := round2(costPerServing * t.unitsSold)
		contribution := round2(t.revenue - totalCost)
		marginPct := 0.0
		if t.revenue > 0 {
			marginPct = round2(contribution / t.revenue * 100)
		}
		row := models.ItemMarginRow{
			ItemName:           itemName,
			UnitsSold:          t.unitsSold,
			Revenue:            t.revenue,
			CostPerServing:     costPerServing,
			TotalCost:          totalCost,
			GrossMarginPct:     models.DefinedMargin(marginPct),
			ContributionMargin: contribution,
		}
		if t.unitsSold > 0 {
			price := round2(t.revenue / t.unitsSold)
			row.Price = &price
		}
		rows = append(rows, row)
	}
	return rows
}

// ApplyMenuPrices returns a copy of rows with prices replaced by the menu
// price overrides where present. Rows themselves are never mutated.
func ApplyMenuPrices(rows []models.ItemMarginRow, menuPrices map[string]float64) []models.ItemMarginRow {
	if len(menuPrices) == 0 {
		return rows
	}
	out := make([]models.ItemMarginRow, len(rows))
	copy(out, rows)
	for i := range out {
		if price, ok := menuPrices[out[i].ItemName]; ok {
			p := price
			out[i].Price = &p
		}
	}
	return out
}

// CategoryMargins rolls revenue and contribution up by menu category. Items
// without a category land in "Uncategorized".
func CategoryMargins(rows []models.ItemMarginRow, itemCategories map[string]string) []models.CategoryMargin {
	type catTotals struct {
		revenue      float64
		contribution float64
	}
	totals := make(map[string]catTotals)
	var order []string
	for _, r := range rows {
		category, ok := itemCategories[r.ItemName]
		if !ok || category == "" {
			category = "Uncategorized"
		}
		existing, seen := totals[category]
		if !seen {
			order = append(order, category)
		}
		totals[category] = catTotals{
			revenue:      existing.revenue + r.Revenue,
			contribution: existing.contribution + r.ContributionMargin,
		}
	}
	out := make([]models.CategoryMargin, 0, len(order))
	for _, category := range order {
		t := totals[category]
		marginPct := 0.0
		if t.revenue > 0 {
			marginPct = round2(t.contribution / t.revenue * 100)
		}
		out = append(out, models.CategoryMargin{
			Category:     category,
			Revenue:      t.revenue,
			Contribution: t.contribution,
			MarginPct:    marginPct,
		})
	}
	return out
}
