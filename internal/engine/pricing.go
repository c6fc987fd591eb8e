package engine

import "github.com/chrisdamba/menusight/internal/models"

const (
	// DefaultTargetMargin is the target gross margin used when the caller
	// supplies none, as a decimal.
	DefaultTargetMargin = 0.75
	// MaxIncreasePct limits how far a suggested price may rise above the
	// current price in one step. Items needing more get a capped suggestion.
	MaxIncreasePct = 12
	// CautionIncreasePct flags suggestions whose increase, even after
	// capping, exceeds this percentage (e.g. when the current price is very
	// low).
	CautionIncreasePct = 15
)

// PriceAtTargetMargin returns the uncapped price at which the target margin
// is achieved exactly: cost / (1 - targetMargin). Zero when cost is zero or
// negative. Callers must keep targetMargin in [0,1). The leak report uses
// this for the true gap to target, independent of the suggestion cap.
func PriceAtTargetMargin(cost, targetMargin float64) float64 {
	if cost <= 0 {
		return 0
	}
	return cost / (1 - targetMargin)
}

// SuggestPrice computes the price recommendation for an item. When cost is
// unknown or zero the suggestion is a neutral no-change value: never suggest
// a price move without cost data. Otherwise the raw target-margin price is
// capped at a MaxIncreasePct step above the current price, and the suggested
// margin is recomputed from the price actually suggested.
func SuggestPrice(cost, currentPrice, targetMargin float64) models.PriceSuggestion {
	if cost <= 0 {
		return models.PriceSuggestion{
			CurrentPrice:    currentPrice,
			Cost:            cost,
			TargetMarginPct: targetMargin * 100,
			SuggestedPrice:  currentPrice,
		}
	}

	rawSuggested := cost / (1 - targetMargin)
	maxPrice := currentPrice * (1 + MaxIncreasePct/100.0)
	capped := rawSuggested > maxPrice
	suggestedPrice := round2(rawSuggested)
	if capped {
		suggestedPrice = round2(maxPrice)
	}

	suggestedMarginPct := 0.0
	if suggestedPrice > 0 {
		suggestedMarginPct = (suggestedPrice - cost) / suggestedPrice * 100
	}
	currentMarginPct := 0.0
	increasePct := 0.0
	if currentPrice > 0 {
		currentMarginPct = (currentPrice - cost) / currentPrice * 100
		increasePct = (suggestedPrice - currentPrice) / currentPrice * 100
	}

	return models.PriceSuggestion{
		CurrentPrice:       currentPrice,
		Cost:               cost,
		CurrentMarginPct:   round2(currentMarginPct),
		TargetMarginPct:    targetMargin * 100,
		SuggestedPrice:     suggestedPrice,
		SuggestedMarginPct: round2(suggestedMarginPct),
		IncreasePct:        round2(increasePct),
		Capped:             capped,
		Caution:            increasePct > CautionIncreasePct,
	}
}
