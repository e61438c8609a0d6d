// Package engine derives salary structures from grade-level inputs.
//
// Every scenario reads an immutable input table, checks that the columns it
// needs are present, validates its scalar parameters and rows, and returns a
// fresh table with Minimum, Midpoint, Maximum, Spread %, Range, Midpoint
// Differential % and Overlap % populated. Nothing is computed and no table
// is returned when a check fails.
package engine

import (
	"fmt"
	"math"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// Compute dispatches to the scenario-specific calculation
func Compute(s Scenario, in models.SalaryTable, p Params) (models.SalaryTable, error) {
	switch s {
	case MinimumsMaximums:
		return FromMinimumsMaximums(in)
	case MidpointBounds:
		return FromMidpointBounds(in, p.LowestMidpoint, p.HighestMidpoint)
	case MidpointProgression:
		return FromMidpointProgression(in, p.LowestMidpoint)
	case SalaryMidpoints:
		return FromSalaryMidpoints(in)
	case MarketRate:
		return FromMarketRates(in, p.TargetPercentile)
	}
	return models.SalaryTable{}, &ParameterError{
		Name:   "scenario",
		Value:  float64(s),
		Reason: "unknown scenario",
	}
}

// ValidateParams checks the scalar parameters a scenario reads
func ValidateParams(s Scenario, p Params) error {
	switch s {
	case MidpointBounds:
		if err := positive("lowest_midpoint", p.LowestMidpoint); err != nil {
			return err
		}
		if err := positive("highest_midpoint", p.HighestMidpoint); err != nil {
			return err
		}
		if p.HighestMidpoint < p.LowestMidpoint {
			return &ParameterError{
				Name:   "highest_midpoint",
				Value:  p.HighestMidpoint,
				Reason: fmt.Sprintf("must not be below lowest_midpoint %g", p.LowestMidpoint),
			}
		}
	case MidpointProgression:
		return positive("lowest_midpoint", p.LowestMidpoint)
	case MarketRate:
		if p.TargetPercentile < 1 || p.TargetPercentile > 99 {
			return &ParameterError{
				Name:   "target_percentile",
				Value:  float64(p.TargetPercentile),
				Reason: "must be between 1 and 99",
			}
		}
	case MinimumsMaximums, SalaryMidpoints:
	default:
		return &ParameterError{Name: "scenario", Value: float64(s), Reason: "unknown scenario"}
	}
	return nil
}

func positive(name string, v float64) error {
	if v > 0 {
		return nil
	}
	reason := "must be greater than zero"
	if v == 0 {
		reason = "required"
	}
	return &ParameterError{Name: name, Value: v, Reason: reason}
}

func checkSchema(s Scenario, in models.SalaryTable) error {
	var missing []models.Column
	for _, c := range RequiredColumns(s) {
		if !in.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Scenario: s, Missing: missing}
	}
	return nil
}

// checkRows collects every row whose required cells are empty or not
// finite, plus scenario 1 rows whose minimum is not below the maximum.
// The first row's differential is never read and is not checked.
func checkRows(s Scenario, in models.SalaryTable) error {
	var violations []RowViolation
	for i, r := range in.Rows {
		bad := false
		for _, c := range RequiredColumns(s) {
			if c == models.ColDifferential && i == 0 {
				continue
			}
			if v := r.Value(c); math.IsNaN(v) || math.IsInf(v, 0) {
				violations = append(violations, RowViolation{
					Index:  i,
					Grade:  r.Grade,
					Reason: fmt.Sprintf("%s is required", c),
				})
				bad = true
			}
		}
		if s == MinimumsMaximums && !bad && r.Minimum >= r.Maximum {
			violations = append(violations, RowViolation{
				Index:  i,
				Grade:  r.Grade,
				Reason: "minimum must be less than maximum",
			})
		}
	}
	if len(violations) > 0 {
		return &RowValidationError{Scenario: s, Violations: violations}
	}
	return nil
}

// Input records per scenario, built only after the schema check passes.

type boundsInput struct {
	grade            string
	minimum, maximum float64
}

type bandInput struct {
	grade  string
	base   float64 // midpoint, market rate or differential depending on scenario
	spread float64
}

func decodeBounds(in models.SalaryTable) []boundsInput {
	out := make([]boundsInput, len(in.Rows))
	for i, r := range in.Rows {
		out[i] = boundsInput{grade: r.Grade, minimum: r.Minimum, maximum: r.Maximum}
	}
	return out
}

func decodeBands(in models.SalaryTable, base models.Column) []bandInput {
	out := make([]bandInput, len(in.Rows))
	for i, r := range in.Rows {
		out[i] = bandInput{grade: r.Grade, spread: r.Spread}
		if base != "" {
			out[i].base = r.Value(base)
		}
	}
	return out
}

// FromMinimumsMaximums derives midpoints and spreads from given bounds
func FromMinimumsMaximums(in models.SalaryTable) (models.SalaryTable, error) {
	if err := checkSchema(MinimumsMaximums, in); err != nil {
		return models.SalaryTable{}, err
	}
	if err := checkRows(MinimumsMaximums, in); err != nil {
		return models.SalaryTable{}, err
	}
	rows := decodeBounds(in)

	out := newResult(MinimumsMaximums, len(rows))
	for i, r := range rows {
		row := &out.Rows[i]
		row.Grade = r.grade
		row.Minimum = r.minimum
		row.Maximum = r.maximum
		row.Midpoint = (r.minimum + r.maximum) / 2
		row.Spread = (r.maximum - r.minimum) / row.Midpoint * 100
	}
	finish(&out, true)
	return out, nil
}

// FromMidpointBounds spaces midpoints evenly between lowest and highest
func FromMidpointBounds(in models.SalaryTable, lowest, highest float64) (models.SalaryTable, error) {
	if err := checkSchema(MidpointBounds, in); err != nil {
		return models.SalaryTable{}, err
	}
	if err := ValidateParams(MidpointBounds, Params{LowestMidpoint: lowest, HighestMidpoint: highest}); err != nil {
		return models.SalaryTable{}, err
	}
	if err := checkRows(MidpointBounds, in); err != nil {
		return models.SalaryTable{}, err
	}
	rows := decodeBands(in, "")

	out := newResult(MidpointBounds, len(rows))
	n := len(rows)
	for i, r := range rows {
		mid := lowest
		if n > 1 {
			mid = lowest + (highest-lowest)*float64(i)/float64(n-1)
		}
		setBand(&out.Rows[i], r.grade, mid, r.spread)
	}
	finish(&out, true)
	return out, nil
}

// FromMidpointProgression compounds each row's differential onto the
// previous midpoint, starting from lowest. Row 0's differential is ignored
// and the input differentials are carried through unchanged.
func FromMidpointProgression(in models.SalaryTable, lowest float64) (models.SalaryTable, error) {
	if err := checkSchema(MidpointProgression, in); err != nil {
		return models.SalaryTable{}, err
	}
	if err := ValidateParams(MidpointProgression, Params{LowestMidpoint: lowest}); err != nil {
		return models.SalaryTable{}, err
	}
	if err := checkRows(MidpointProgression, in); err != nil {
		return models.SalaryTable{}, err
	}
	rows := decodeBands(in, models.ColDifferential)

	out := newResult(MidpointProgression, len(rows))
	mid := lowest
	for i, r := range rows {
		if i > 0 {
			mid = mid * (1 + r.base/100)
		}
		setBand(&out.Rows[i], r.grade, mid, r.spread)
		out.Rows[i].Differential = r.base
	}
	finish(&out, false)
	return out, nil
}

// FromSalaryMidpoints builds ranges around given midpoints
func FromSalaryMidpoints(in models.SalaryTable) (models.SalaryTable, error) {
	if err := checkSchema(SalaryMidpoints, in); err != nil {
		return models.SalaryTable{}, err
	}
	if err := checkRows(SalaryMidpoints, in); err != nil {
		return models.SalaryTable{}, err
	}
	rows := decodeBands(in, models.ColMidpoint)

	out := newResult(SalaryMidpoints, len(rows))
	for i, r := range rows {
		setBand(&out.Rows[i], r.grade, r.base, r.spread)
	}
	finish(&out, true)
	return out, nil
}

// FromMarketRates scales market rates by the target percentile's factor
func FromMarketRates(in models.SalaryTable, percentile int) (models.SalaryTable, error) {
	if err := checkSchema(MarketRate, in); err != nil {
		return models.SalaryTable{}, err
	}
	if err := ValidateParams(MarketRate, Params{TargetPercentile: percentile}); err != nil {
		return models.SalaryTable{}, err
	}
	if err := checkRows(MarketRate, in); err != nil {
		return models.SalaryTable{}, err
	}
	rows := decodeBands(in, models.ColMarketRate)
	factor := AdjustmentFactor(percentile)

	out := newResult(MarketRate, len(rows))
	for i, r := range rows {
		setBand(&out.Rows[i], r.grade, r.base*factor, r.spread)
		out.Rows[i].MarketRate = r.base
	}
	finish(&out, true)
	return out, nil
}

func newResult(s Scenario, n int) models.SalaryTable {
	return models.SalaryTable{
		Columns: OutputColumns(s),
		Rows:    make([]models.GradeRow, n),
	}
}

// setBand centres a range of the given spread on mid
func setBand(row *models.GradeRow, grade string, mid, spread float64) {
	row.Grade = grade
	row.Midpoint = mid
	row.Spread = spread
	row.Minimum = mid * (1 - spread/200)
	row.Maximum = mid * (1 + spread/200)
}

// finish fills the columns every scenario derives the same way
func finish(t *models.SalaryTable, differential bool) {
	for i := range t.Rows {
		t.Rows[i].Range = t.Rows[i].Maximum - t.Rows[i].Minimum
	}
	overlap := Overlap(t.Series(models.ColMinimum), t.Series(models.ColMaximum))
	for i := range t.Rows {
		t.Rows[i].Overlap = overlap[i]
	}
	if !differential {
		return
	}
	diff := PercentChange(t.Series(models.ColMidpoint))
	for i := range t.Rows {
		t.Rows[i].Differential = diff[i]
	}
}
