package models

import "math"

// Column names a field of a salary table as it appears in a header row
type Column string

const (
	ColGrade        Column = "Salary Grade"
	ColMinimum      Column = "Minimum"
	ColMidpoint     Column = "Midpoint"
	ColMaximum      Column = "Maximum"
	ColSpread       Column = "Spread %"
	ColRange        Column = "Range"
	ColDifferential Column = "Midpoint Differential %"
	ColOverlap      Column = "Overlap %"
	ColMarketRate   Column = "Market Rate"
)

// AllColumns lists every known column in display order
var AllColumns = []Column{
	ColGrade,
	ColMarketRate,
	ColMinimum,
	ColMidpoint,
	ColMaximum,
	ColSpread,
	ColRange,
	ColDifferential,
	ColOverlap,
}

// IsCurrency reports whether values in the column are money amounts
func (c Column) IsCurrency() bool {
	switch c {
	case ColMinimum, ColMidpoint, ColMaximum, ColRange, ColMarketRate:
		return true
	}
	return false
}

// IsPercent reports whether values in the column are percentages
func (c Column) IsPercent() bool {
	switch c {
	case ColSpread, ColDifferential, ColOverlap:
		return true
	}
	return false
}

// GradeRow represents one salary grade of a structure
type GradeRow struct {
	Grade        string
	MarketRate   float64
	Minimum      float64
	Midpoint     float64
	Maximum      float64
	Spread       float64
	Range        float64
	Differential float64
	Overlap      float64
}

// Value returns the numeric field backing a column, NaN for the grade column
func (r GradeRow) Value(c Column) float64 {
	switch c {
	case ColMinimum:
		return r.Minimum
	case ColMidpoint:
		return r.Midpoint
	case ColMaximum:
		return r.Maximum
	case ColSpread:
		return r.Spread
	case ColRange:
		return r.Range
	case ColDifferential:
		return r.Differential
	case ColOverlap:
		return r.Overlap
	case ColMarketRate:
		return r.MarketRate
	}
	return math.NaN()
}

// SetValue assigns the numeric field backing a column
func (r *GradeRow) SetValue(c Column, v float64) {
	switch c {
	case ColMinimum:
		r.Minimum = v
	case ColMidpoint:
		r.Midpoint = v
	case ColMaximum:
		r.Maximum = v
	case ColSpread:
		r.Spread = v
	case ColRange:
		r.Range = v
	case ColDifferential:
		r.Differential = v
	case ColOverlap:
		r.Overlap = v
	case ColMarketRate:
		r.MarketRate = v
	}
}

// SalaryTable is an ordered list of grades, lowest first, along with the
// columns that actually carry data. Row order defines adjacency.
type SalaryTable struct {
	Columns []Column
	Rows    []GradeRow
}

// NewSalaryTable builds a table, copying both slices
func NewSalaryTable(columns []Column, rows []GradeRow) SalaryTable {
	t := SalaryTable{
		Columns: make([]Column, len(columns)),
		Rows:    make([]GradeRow, len(rows)),
	}
	copy(t.Columns, columns)
	copy(t.Rows, rows)
	return t
}

// Len returns the number of grades
func (t SalaryTable) Len() int {
	return len(t.Rows)
}

// Has reports whether the column is present
func (t SalaryTable) Has(c Column) bool {
	for _, col := range t.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no memory with t
func (t SalaryTable) Clone() SalaryTable {
	return NewSalaryTable(t.Columns, t.Rows)
}

// Series returns the column values in row order
func (t SalaryTable) Series(c Column) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Value(c)
	}
	return out
}

// Grades returns the grade names in row order
func (t SalaryTable) Grades() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Grade
	}
	return out
}

// OrderedColumns returns the present columns in canonical display order
func (t SalaryTable) OrderedColumns() []Column {
	var cols []Column
	for _, c := range AllColumns {
		if t.Has(c) {
			cols = append(cols, c)
		}
	}
	return cols
}
