package engine

import "math"

// Overlap measures how much of each previous grade's range sits above the
// current grade's minimum, as a percentage of that previous range. The
// first row has no predecessor and is always 0. A degenerate previous
// range (max == min) or a gap between grades also yields 0.
//
// Overlap panics if the slices differ in length.
func Overlap(minimums, maximums []float64) []float64 {
	if len(minimums) != len(maximums) {
		panic("engine: Overlap called with mismatched series")
	}
	out := make([]float64, len(minimums))
	for i := 1; i < len(minimums); i++ {
		prevMax := maximums[i-1]
		prevMin := minimums[i-1]
		curMin := minimums[i]
		if prevMax > curMin && prevMax-prevMin > 0 {
			out[i] = (prevMax - curMin) / (prevMax - prevMin) * 100
		}
	}
	return out
}

// PercentChange returns the step-to-step change of values in percent.
// The first element is NaN.
func PercentChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (values[i] - values[i-1]) / values[i-1] * 100
	}
	return out
}
