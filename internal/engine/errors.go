package engine

import (
	"fmt"
	"strings"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// SchemaError reports input columns a scenario needs but the table lacks
type SchemaError struct {
	Scenario Scenario
	Missing  []models.Column
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("scenario %d: missing columns: %s", int(e.Scenario), strings.Join(names, ", "))
}

// RowViolation identifies one row that contradicts itself
type RowViolation struct {
	Index  int
	Grade  string
	Reason string
}

// RowValidationError collects every offending row of a table
type RowValidationError struct {
	Scenario   Scenario
	Violations []RowViolation
}

func (e *RowValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("row %d (%s): %s", v.Index, v.Grade, v.Reason)
	}
	return fmt.Sprintf("scenario %d: %d invalid rows: %s", int(e.Scenario), len(e.Violations), strings.Join(parts, "; "))
}

// ParameterError reports a scalar parameter that is missing or out of range
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}
