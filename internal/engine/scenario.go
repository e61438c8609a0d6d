package engine

import (
	"fmt"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// Scenario selects how midpoints, minimums and maximums are derived
type Scenario int

const (
	MinimumsMaximums    Scenario = 1
	MidpointBounds      Scenario = 2
	MidpointProgression Scenario = 3
	SalaryMidpoints     Scenario = 4
	MarketRate          Scenario = 5
)

// Scenarios lists every supported scenario in menu order
var Scenarios = []Scenario{
	MinimumsMaximums,
	MidpointBounds,
	MidpointProgression,
	SalaryMidpoints,
	MarketRate,
}

// Valid reports whether s is one of the five scenarios
func (s Scenario) Valid() bool {
	return s >= MinimumsMaximums && s <= MarketRate
}

func (s Scenario) String() string {
	switch s {
	case MinimumsMaximums:
		return "Salary Minimums & Maximums"
	case MidpointBounds:
		return "Lowest & Highest Midpoint"
	case MidpointProgression:
		return "Midpoint Progression"
	case SalaryMidpoints:
		return "Salary Midpoints"
	case MarketRate:
		return "Market Rate"
	}
	return fmt.Sprintf("Scenario(%d)", int(s))
}

// RequiredColumns returns the input columns a scenario reads from the table
func RequiredColumns(s Scenario) []models.Column {
	switch s {
	case MinimumsMaximums:
		return []models.Column{models.ColMinimum, models.ColMaximum}
	case MidpointBounds:
		return []models.Column{models.ColSpread}
	case MidpointProgression:
		return []models.Column{models.ColDifferential, models.ColSpread}
	case SalaryMidpoints:
		return []models.Column{models.ColMidpoint, models.ColSpread}
	case MarketRate:
		return []models.Column{models.ColMarketRate, models.ColSpread}
	}
	return nil
}

// OutputColumns returns the columns populated on a scenario's result
func OutputColumns(s Scenario) []models.Column {
	cols := []models.Column{
		models.ColGrade,
		models.ColMinimum,
		models.ColMidpoint,
		models.ColMaximum,
		models.ColSpread,
		models.ColRange,
		models.ColDifferential,
		models.ColOverlap,
	}
	if s == MarketRate {
		cols = append([]models.Column{models.ColGrade, models.ColMarketRate}, cols[1:]...)
	}
	return cols
}

// Params carries the scalar inputs some scenarios need. A zero value
// means the parameter was not supplied.
type Params struct {
	LowestMidpoint   float64 `yaml:"lowest_midpoint" json:"lowest_midpoint,omitempty"`
	HighestMidpoint  float64 `yaml:"highest_midpoint" json:"highest_midpoint,omitempty"`
	TargetPercentile int     `yaml:"target_percentile" json:"target_percentile,omitempty"`
}
