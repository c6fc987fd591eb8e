package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestPriceCapped(t *testing.T) {
	// cost $5.00 at 75% target wants $20.00, but the first-step cap limits
	// the ask to 12% above the $6.00 current price.
	s := SuggestPrice(5, 6, 0.75)

	assert.Equal(t, 6.72, s.SuggestedPrice)
	assert.True(t, s.Capped)
	assert.Equal(t, 12.0, s.IncreasePct)
	assert.False(t, s.Caution)
	assert.Equal(t, 75.0, s.TargetMarginPct)
	// margin recomputed from the capped price, not assumed to hit target
	assert.Equal(t, 25.6, s.SuggestedMarginPct)
	assert.Equal(t, 16.67, s.CurrentMarginPct)
}

func TestSuggestPriceUncapped(t *testing.T) {
	// cost $2.00 at 50% target wants $4.00; current price $3.80 keeps the
	// increase inside the cap.
	s := SuggestPrice(2, 3.8, 0.5)

	assert.Equal(t, 4.0, s.SuggestedPrice)
	assert.False(t, s.Capped)
	assert.Equal(t, 50.0, s.SuggestedMarginPct)
	assert.Equal(t, 5.26, s.IncreasePct)
	assert.False(t, s.Caution)
}

func TestSuggestPriceZeroCostNeutral(t *testing.T) {
	for _, cost := range []float64{0, -1} {
		s := SuggestPrice(cost, 9.5, 0.75)

		assert.Equal(t, 9.5, s.SuggestedPrice)
		assert.Equal(t, 9.5, s.CurrentPrice)
		assert.Equal(t, 0.0, s.CurrentMarginPct)
		assert.Equal(t, 0.0, s.SuggestedMarginPct)
		assert.Equal(t, 0.0, s.IncreasePct)
		assert.False(t, s.Capped)
		assert.False(t, s.Caution)
	}
}

func TestSuggestPriceCautionOnLowCurrentPrice(t *testing.T) {
	// current price so low that even the capped ask is above 15%? The cap is
	// 12%, so caution only fires when currentPrice is zero-ish and the raw
	// suggestion passes through uncapped.
	s := SuggestPrice(4, 1, 0.5)

	// raw 8.00 vs cap 1.12: capped, increase 12%
	assert.True(t, s.Capped)
	assert.False(t, s.Caution)

	// zero current price: the cap ceiling is zero, so the suggestion
	// collapses to it and increase_pct stays 0 by definition
	s = SuggestPrice(4, 0, 0.5)
	assert.True(t, s.Capped)
	assert.Equal(t, 0.0, s.SuggestedPrice)
	assert.Equal(t, 0.0, s.IncreasePct)
}

func TestSuggestPriceMonotonicInTargetMargin(t *testing.T) {
	const cost, currentPrice = 5.0, 20.0
	prev := 0.0
	for _, target := range []float64{0, 0.1, 0.25, 0.5, 0.6, 0.7, 0.75, 0.8, 0.9} {
		s := SuggestPrice(cost, currentPrice, target)
		assert.GreaterOrEqual(t, s.SuggestedPrice, prev, "target %v", target)
		prev = s.SuggestedPrice

		wantCapped := cost/(1-target) > currentPrice*1.12
		assert.Equal(t, wantCapped, s.Capped, "target %v", target)
	}
}

func TestPriceAtTargetMargin(t *testing.T) {
	assert.Equal(t, 20.0, PriceAtTargetMargin(5, 0.75))
	assert.Equal(t, 0.0, PriceAtTargetMargin(0, 0.75))
	assert.Equal(t, 0.0, PriceAtTargetMargin(-2, 0.75))
	// 0 target margin prices at cost
	assert.Equal(t, 5.0, PriceAtTargetMargin(5, 0))
}
