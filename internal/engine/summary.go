package engine

import (
	"math"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// Summary holds the headline figures of a computed structure
type Summary struct {
	Grades      int
	AvgMidpoint float64
	AvgSpread   float64
	AvgOverlap  float64
	TotalRange  float64
}

// Summarize averages midpoints, spreads and overlaps and totals ranges.
// NaN entries are skipped; an all-NaN column averages to NaN.
func Summarize(t models.SalaryTable) Summary {
	return Summary{
		Grades:      t.Len(),
		AvgMidpoint: mean(t.Series(models.ColMidpoint)),
		AvgSpread:   mean(t.Series(models.ColSpread)),
		AvgOverlap:  mean(t.Series(models.ColOverlap)),
		TotalRange:  sum(t.Series(models.ColRange)),
	}
}

func mean(values []float64) float64 {
	var total float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}
