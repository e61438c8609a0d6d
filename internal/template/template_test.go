package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

func TestGenerateFeedsEveryScenario(t *testing.T) {
	for _, s := range engine.Scenarios {
		t.Run(s.String(), func(t *testing.T) {
			in, err := Generate(s, 10)
			require.NoError(t, err)
			require.Equal(t, 10, in.Len())
			for _, c := range engine.RequiredColumns(s) {
				assert.True(t, in.Has(c), "missing %s", c)
			}

			out, err := engine.Compute(s, in, DefaultParams(s))
			require.NoError(t, err)
			assert.Equal(t, 10, out.Len())
		})
	}
}

func TestGenerateValues(t *testing.T) {
	in, err := Generate(engine.MinimumsMaximums, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"CXO", "Sr Vice President", "Vice President"}, in.Grades())
	assert.Equal(t, []float64{50000, 60000, 70000}, in.Series(models.ColMinimum))
	assert.Equal(t, []float64{70000, 84000, 98000}, in.Series(models.ColMaximum))

	in, err = Generate(engine.MidpointProgression, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, 10}, in.Series(models.ColDifferential))
	assert.Equal(t, []float64{30, 30, 30}, in.Series(models.ColSpread))

	in, err = Generate(engine.MarketRate, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{50000, 55000}, in.Series(models.ColMarketRate), 1e-6)
}

func TestGenerateNamesBeyondDefaults(t *testing.T) {
	in, err := Generate(engine.SalaryMidpoints, 12)
	require.NoError(t, err)
	assert.Equal(t, "Analyst", in.Rows[9].Grade)
	assert.Equal(t, "Grade 11", in.Rows[10].Grade)
	assert.Equal(t, "Grade 12", in.Rows[11].Grade)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := Generate(engine.SalaryMidpoints, 0)
	assert.Error(t, err)
	_, err = Generate(engine.SalaryMidpoints, MaxGrades+1)
	assert.Error(t, err)
	_, err = Generate(engine.Scenario(7), 5)
	assert.Error(t, err)
}
