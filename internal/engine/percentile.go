package engine

import "sort"

// percentileFactors maps survey percentiles to the multiplier applied to a
// market rate. Read-only.
var percentileFactors = map[int]float64{
	10: 0.70,
	25: 0.85,
	50: 1.00,
	60: 1.08,
	75: 1.18,
	90: 1.35,
	95: 1.50,
}

// AdjustmentFactor returns the market-rate multiplier for a target
// percentile. Percentiles outside the lookup table move linearly around
// the 50th: 1 + (p-50)/100.
func AdjustmentFactor(percentile int) float64 {
	if f, ok := percentileFactors[percentile]; ok {
		return f
	}
	return 1 + float64(percentile-50)/100
}

// PercentileFactors returns a copy of the lookup table
func PercentileFactors() map[int]float64 {
	out := make(map[int]float64, len(percentileFactors))
	for k, v := range percentileFactors {
		out[k] = v
	}
	return out
}

// StandardPercentiles returns the tabulated percentiles in ascending order
func StandardPercentiles() []int {
	out := make([]int, 0, len(percentileFactors))
	for k := range percentileFactors {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
