package template

import (
	"fmt"
	"math"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

const (
	MinGrades = 1
	MaxGrades = 50

	baseSalary    = 50000
	defaultSpread = 30
	defaultStep   = 10
)

// DefaultGradeNames are used for the first ten rows of a template
var DefaultGradeNames = []string{
	"CXO",
	"Sr Vice President",
	"Vice President",
	"Sr Director",
	"Director",
	"Sr Manager",
	"Principal",
	"Manager IC",
	"Sr Analyst",
	"Analyst",
}

// GradeName returns the template name of the i-th grade
func GradeName(i int) string {
	if i < len(DefaultGradeNames) {
		return DefaultGradeNames[i]
	}
	return fmt.Sprintf("Grade %d", i+1)
}

// Generate builds a starter input table for a scenario with n grades
func Generate(s engine.Scenario, n int) (models.SalaryTable, error) {
	if !s.Valid() {
		return models.SalaryTable{}, fmt.Errorf("unknown scenario %d", int(s))
	}
	if n < MinGrades || n > MaxGrades {
		return models.SalaryTable{}, fmt.Errorf("number of grades must be between %d and %d, got %d", MinGrades, MaxGrades, n)
	}

	cols := append([]models.Column{models.ColGrade}, engine.RequiredColumns(s)...)
	rows := make([]models.GradeRow, n)
	for i := range rows {
		row := &rows[i]
		row.Grade = GradeName(i)
		growth := baseSalary * math.Pow(1.1, float64(i))

		switch s {
		case engine.MinimumsMaximums:
			row.Minimum = float64(50000 + i*10000)
			row.Maximum = float64(70000 + i*14000)
		case engine.MidpointBounds:
			row.Spread = defaultSpread
		case engine.MidpointProgression:
			if i > 0 {
				row.Differential = defaultStep
			}
			row.Spread = defaultSpread
		case engine.SalaryMidpoints:
			row.Midpoint = growth
			row.Spread = defaultSpread
		case engine.MarketRate:
			row.MarketRate = growth
			row.Spread = defaultSpread
		}
	}
	return models.NewSalaryTable(cols, rows), nil
}

// DefaultParams returns the parameter values offered alongside a template
func DefaultParams(s engine.Scenario) engine.Params {
	switch s {
	case engine.MidpointBounds:
		return engine.Params{LowestMidpoint: 20000, HighestMidpoint: 100000}
	case engine.MidpointProgression:
		return engine.Params{LowestMidpoint: 50000}
	case engine.MarketRate:
		return engine.Params{TargetPercentile: 50}
	}
	return engine.Params{}
}
