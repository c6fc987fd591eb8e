package engine

import (
	"math"
	"sort"
)

// round2 rounds to 2 decimal places, half away from zero (currency rounding).
func round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// Median returns the median of values: the mean of the two central values for
// even length, the single central value for odd length, 0 for empty input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Percentile returns the value at the given percentile of an ascending-sorted
// slice, using the nearest-rank method: sorted[min(n-1, floor(pct/100*n))].
// Both the quadrant classifier and the leak reporter pin to this definition.
func Percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(pct / 100 * float64(len(sorted))))
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
