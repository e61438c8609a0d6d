package ui

import (
	"fmt"
	"math"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

func sampleResult(t *testing.T) models.SalaryTable {
	t.Helper()
	in := models.NewSalaryTable(
		[]models.Column{models.ColGrade, models.ColMinimum, models.ColMaximum},
		[]models.GradeRow{
			{Grade: "Analyst", Minimum: 50000, Maximum: 70000},
			{Grade: "Sr Analyst", Minimum: 60000, Maximum: 85000},
		},
	)
	out, err := engine.FromMinimumsMaximums(in)
	require.NoError(t, err)
	return out
}

func TestRenderTable(t *testing.T) {
	s, err := RenderTable(sampleResult(t), "$")
	require.NoError(t, err)
	plain := pterm.RemoveColorFromString(s)

	for _, want := range []string{"Salary Grade", "Sr Analyst", "$72,500", "$25,000", "34.5%", "20.8%", "50.0%"} {
		assert.Contains(t, plain, want)
	}
}

func TestRenderSummary(t *testing.T) {
	s, err := RenderSummary(engine.Summarize(sampleResult(t)), "€")
	require.NoError(t, err)
	plain := pterm.RemoveColorFromString(s)
	assert.Contains(t, plain, "€66,250")
	assert.Contains(t, plain, "€45,000")
	assert.Contains(t, plain, "25.0%")
}

func TestRenderMidpointChart(t *testing.T) {
	s, err := RenderMidpointChart(sampleResult(t))
	require.NoError(t, err)
	assert.Contains(t, pterm.RemoveColorFromString(s), "Sr Analyst")
}

func TestRenderOverlapChart(t *testing.T) {
	s, err := RenderOverlapChart(sampleResult(t))
	require.NoError(t, err)
	plain := pterm.RemoveColorFromString(s)
	assert.Contains(t, plain, "Analyst")
	assert.Contains(t, plain, "50")
}

func TestColorizeOverlapKeepsValue(t *testing.T) {
	for _, v := range []float64{0, 30, 60, 90} {
		assert.Equal(t, fmt.Sprintf("%.1f%%", v), pterm.RemoveColorFromString(ColorizeOverlap(v)))
	}
	assert.Equal(t, "-", pterm.RemoveColorFromString(ColorizeOverlap(math.NaN())))
}

func TestDescribeError(t *testing.T) {
	_, err := engine.Compute(engine.MinimumsMaximums, models.SalaryTable{}, engine.Params{})
	lines := DescribeError(err)
	assert.Contains(t, lines[0], `"Minimum"`)
	assert.Contains(t, lines[0], `"Maximum"`)

	_, err = engine.FromMinimumsMaximums(models.NewSalaryTable(
		[]models.Column{models.ColGrade, models.ColMinimum, models.ColMaximum},
		[]models.GradeRow{{Grade: "A", Minimum: 2, Maximum: 1}, {Grade: "B", Minimum: 3, Maximum: 3}},
	))
	lines = DescribeError(fmt.Errorf("grades.csv: %w", err))
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Grade 1 (A)")
	assert.Contains(t, lines[2], "Grade 2 (B)")

	_, err = engine.FromMidpointBounds(models.NewSalaryTable([]models.Column{models.ColSpread}, nil), 5, 1)
	lines = DescribeError(err)
	assert.Contains(t, lines[0], "highest_midpoint")
}

func TestColorizeText(t *testing.T) {
	assert.Equal(t, "paygrade", pterm.RemoveColorFromString(ColorizeText("paygrade")))
}
