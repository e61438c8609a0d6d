package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
	"github.com/fr4nk3nst1ner/paygrade/internal/utils"
)

// FormatCell renders one value the way the results table shows it
func FormatCell(c models.Column, row models.GradeRow, currency string) string {
	switch {
	case c == models.ColGrade:
		return row.Grade
	case c == models.ColOverlap:
		return ColorizeOverlap(row.Overlap)
	case c.IsCurrency():
		return utils.FormatCurrency(currency, row.Value(c))
	case c.IsPercent():
		return utils.FormatPercent(row.Value(c))
	}
	return fmt.Sprint(row.Value(c))
}

// ColorizeOverlap colours an overlap percentage by how healthy it is
func ColorizeOverlap(pct float64) string {
	formatted := utils.FormatPercent(pct)

	switch {
	case math.IsNaN(pct) || pct == 0:
		return pterm.Gray(formatted) // no overlap, grades are disjoint
	case pct <= 50:
		return pterm.Green(formatted)
	case pct <= 65:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}

// RenderTable renders a salary table with currency-formatted amounts
func RenderTable(t models.SalaryTable, currency string) (string, error) {
	cols := t.OrderedColumns()

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	data := pterm.TableData{header}
	for _, row := range t.Rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			line[i] = FormatCell(c, row, currency)
		}
		data = append(data, line)
	}

	return pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
}

// RenderSummary renders the quick statistics panel
func RenderSummary(s engine.Summary, currency string) (string, error) {
	data := pterm.TableData{
		{"Grades", fmt.Sprint(s.Grades)},
		{"Avg Midpoint", utils.FormatCurrency(currency, s.AvgMidpoint)},
		{"Avg Spread", utils.FormatPercent(s.AvgSpread)},
		{"Avg Overlap", utils.FormatPercent(s.AvgOverlap)},
		{"Total Range", utils.FormatCurrency(currency, s.TotalRange)},
	}
	return pterm.DefaultTable.WithData(data).Srender()
}

// RenderMidpointChart draws midpoints as a horizontal bar chart
func RenderMidpointChart(t models.SalaryTable) (string, error) {
	return renderBars(t, models.ColMidpoint)
}

// RenderOverlapChart draws each grade's overlap with the grade below it
func RenderOverlapChart(t models.SalaryTable) (string, error) {
	return renderBars(t, models.ColOverlap)
}

func renderBars(t models.SalaryTable, c models.Column) (string, error) {
	bars := make(pterm.Bars, 0, t.Len())
	for _, row := range t.Rows {
		v := row.Value(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		bars = append(bars, pterm.Bar{Label: row.Grade, Value: int(math.Round(v))})
	}
	return pterm.DefaultBarChart.WithBars(bars).WithHorizontal().WithShowValue().Srender()
}

// DescribeError turns an engine error into lines for the user
func DescribeError(err error) []string {
	var schemaErr *engine.SchemaError
	var rowErr *engine.RowValidationError
	var paramErr *engine.ParameterError

	switch {
	case errors.As(err, &schemaErr):
		names := make([]string, len(schemaErr.Missing))
		for i, c := range schemaErr.Missing {
			names[i] = fmt.Sprintf("%q", string(c))
		}
		return []string{
			fmt.Sprintf("The input table is missing required columns for \"%s\": %s",
				schemaErr.Scenario, strings.Join(names, ", ")),
			"Generate a template with -template to see the expected layout.",
		}
	case errors.As(err, &rowErr):
		lines := []string{fmt.Sprintf("%d grade(s) need fixing:", len(rowErr.Violations))}
		for _, v := range rowErr.Violations {
			lines = append(lines, fmt.Sprintf("  Grade %d (%s): %s", v.Index+1, v.Grade, v.Reason))
		}
		return lines
	case errors.As(err, &paramErr):
		return []string{fmt.Sprintf("Invalid %s (%g): %s", paramErr.Name, paramErr.Value, paramErr.Reason)}
	}
	return []string{err.Error()}
}

// PrintError shows an error with pterm's error prefix
func PrintError(err error) {
	lines := DescribeError(err)
	pterm.Error.Println(lines[0])
	for _, l := range lines[1:] {
		pterm.Println(l)
	}
}
