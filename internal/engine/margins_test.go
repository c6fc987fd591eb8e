package engine

import (
	"math/rand"
	"testing"

	"github.com/chrisdamba/menusight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMarginsAggregation(t *testing.T) {
	records := []models.SalesRecord{
		{ItemName: "Smash Burger", UnitsSold: 10, Revenue: 160},
		{ItemName: "  Smash Burger ", UnitsSold: 5, Revenue: 80},
		{ItemName: "Fish Tacos", UnitsSold: 3, Revenue: 51},
	}
	costs := map[string]float64{"Smash Burger": 3.01, "Fish Tacos": 4.5}

	rows := ComputeMargins(records, costs)
	require.Len(t, rows, 2)

	burger := rows[0]
	assert.Equal(t, "Smash Burger", burger.ItemName)
	assert.Equal(t, 15.0, burger.UnitsSold)
	assert.Equal(t, 240.0, burger.Revenue)
	assert.Equal(t, 45.15, burger.TotalCost)
	assert.Equal(t, 194.85, burger.ContributionMargin)
	require.True(t, burger.GrossMarginPct.Valid)
	assert.Equal(t, 81.19, burger.GrossMarginPct.Pct)
	require.NotNil(t, burger.Price)
	assert.Equal(t, 16.0, *burger.Price)

	tacos := rows[1]
	assert.Equal(t, "Fish Tacos", tacos.ItemName)
	assert.Equal(t, 13.5, tacos.TotalCost)
	assert.Equal(t, 37.5, tacos.ContributionMargin)
}

func TestComputeMarginsCaseSensitiveGrouping(t *testing.T) {
	// Trimming canonicalizes whitespace but deliberately does not lowercase;
	// "Burger" and "burger" remain distinct items.
	records := []models.SalesRecord{
		{ItemName: "Burger", UnitsSold: 10, Revenue: 100},
		{ItemName: "burger ", UnitsSold: 5, Revenue: 50},
	}

	rows := ComputeMargins(records, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "Burger", rows[0].ItemName)
	assert.Equal(t, 10.0, rows[0].UnitsSold)
	assert.Equal(t, 100.0, rows[0].Revenue)
	assert.Equal(t, "burger", rows[1].ItemName)
	assert.Equal(t, 5.0, rows[1].UnitsSold)
	assert.Equal(t, 50.0, rows[1].Revenue)
}

func TestComputeMarginsMissingCostDefaultsToZero(t *testing.T) {
	records := []models.SalesRecord{{ItemName: "Mystery Dish", UnitsSold: 4, Revenue: 40}}

	rows := ComputeMargins(records, map[string]float64{})
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].CostPerServing)
	assert.Equal(t, 0.0, rows[0].TotalCost)
	assert.Equal(t, 40.0, rows[0].ContributionMargin)
	assert.Equal(t, 100.0, rows[0].GrossMarginPct.Pct)
}

func TestComputeMarginsZeroRevenue(t *testing.T) {
	records := []models.SalesRecord{{ItemName: "Comp Meal", UnitsSold: 2, Revenue: 0}}

	rows := ComputeMargins(records, map[string]float64{"Comp Meal": 5})
	require.Len(t, rows, 1)
	// zero revenue means a defined 0% margin, never an undefined one
	require.True(t, rows[0].GrossMarginPct.Valid)
	assert.Equal(t, 0.0, rows[0].GrossMarginPct.Pct)
	assert.Equal(t, -10.0, rows[0].ContributionMargin)
}

func TestComputeMarginsZeroUnitsOmitsPrice(t *testing.T) {
	records := []models.SalesRecord{{ItemName: "Refund Line", UnitsSold: 0, Revenue: 12}}

	rows := ComputeMargins(records, nil)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Price)
}

func TestComputeMarginsOrderIndependentTotals(t *testing.T) {
	records := []models.SalesRecord{
		{ItemName: "A", UnitsSold: 1, Revenue: 10},
		{ItemName: "B", UnitsSold: 2, Revenue: 24},
		{ItemName: "A", UnitsSold: 3, Revenue: 33},
		{ItemName: "C", UnitsSold: 4, Revenue: 48},
		{ItemName: "B", UnitsSold: 5, Revenue: 60},
	}
	costs := map[string]float64{"A": 1, "B": 2, "C": 3}

	byName := func(rows []models.ItemMarginRow) map[string]models.ItemMarginRow {
		m := make(map[string]models.ItemMarginRow)
		for _, r := range rows {
			m[r.ItemName] = r
		}
		return m
	}

	want := byName(ComputeMargins(records, costs))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.SalesRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, byName(ComputeMargins(shuffled, costs)))
	}
}

func TestComputeMarginsInvariants(t *testing.T) {
	records := []models.SalesRecord{
		{ItemName: "A", UnitsSold: 7, Revenue: 93.37},
		{ItemName: "B", UnitsSold: 11, Revenue: 154.01},
		{ItemName: "C", UnitsSold: 0, Revenue: 0},
	}
	costs := map[string]float64{"A": 3.33, "B": 4.17}

	for _, row := range ComputeMargins(records, costs) {
		assert.Equal(t, round2(row.CostPerServing*row.UnitsSold), row.TotalCost, row.ItemName)
		assert.Equal(t, round2(row.Revenue-row.TotalCost), row.ContributionMargin, row.ItemName)
	}
}

func TestComputeMarginsIdempotent(t *testing.T) {
	records := []models.SalesRecord{
		{ItemName: "A", UnitsSold: 7, Revenue: 93.37},
		{ItemName: "B", UnitsSold: 11, Revenue: 154.01},
	}
	costs := map[string]float64{"A": 3.33}

	first := ComputeMargins(records, costs)
	second := ComputeMargins(records, costs)
	assert.Equal(t, first, second)
}

func TestApplyMenuPrices(t *testing.T) {
	price := 10.0
	rows := []models.ItemMarginRow{
		{ItemName: "A", Price: &price},
		{ItemName: "B"},
	}

	out := ApplyMenuPrices(rows, map[string]float64{"A": 16, "B": 12})

	require.NotNil(t, out[0].Price)
	assert.Equal(t, 16.0, *out[0].Price)
	require.NotNil(t, out[1].Price)
	assert.Equal(t, 12.0, *out[1].Price)
	// originals untouched
	assert.Equal(t, 10.0, *rows[0].Price)
	assert.Nil(t, rows[1].Price)
}

func TestCategoryMargins(t *testing.T) {
	rows := []models.ItemMarginRow{
		{ItemName: "Smash Burger", Revenue: 200, ContributionMargin: 150},
		{ItemName: "Fish Tacos", Revenue: 100, ContributionMargin: 60},
		{ItemName: "Soda", Revenue: 50, ContributionMargin: 45},
	}
	categories := map[string]string{
		"Smash Burger": "Mains",
		"Fish Tacos":   "Mains",
	}

	out := CategoryMargins(rows, categories)
	require.Len(t, out, 2)

	assert.Equal(t, "Mains", out[0].Category)
	assert.Equal(t, 300.0, out[0].Revenue)
	assert.Equal(t, 210.0, out[0].Contribution)
	assert.Equal(t, 70.0, out[0].MarginPct)

	assert.Equal(t, "Uncategorized", out[1].Category)
	assert.Equal(t, 50.0, out[1].Revenue)
}
