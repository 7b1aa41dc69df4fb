package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pitchlens/domain/core"
	"pitchlens/domain/regression"
	"pitchlens/domain/trend"
)

func TestResultExporter_ComparisonWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	exporter := &ResultExporter{
		Comparison: []trend.ComparisonRow{{
			MetricLabel: "Velocity",
			PitchLabel:  "4-Seam FB",
			Today:       core.Some(95),
			TrendAvg:    core.Some(94.75),
			Delta:       core.Some(0.25),
			Unit:        "mph",
			NToday:      42,
			NTrend:      4,
		}},
		Outcomes: []trend.OutcomeComparisonRow{{
			StatLabel: "K/9",
			Today:     core.None(),
			TrendAvg:  core.Some(9.1),
			Delta:     core.None(),
			Unit:      "per 9",
		}},
	}
	require.NoError(t, exporter.Export(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Comparison", "Outcomes"}, f.GetSheetList())

	pitchCell, err := f.GetCellValue("Comparison", "A2")
	require.NoError(t, err)
	assert.Equal(t, "4-Seam FB", pitchCell)

	today, err := f.GetCellValue("Comparison", "C2")
	require.NoError(t, err)
	assert.Equal(t, "95", today)

	// Null values export as blank cells.
	nullToday, err := f.GetCellValue("Outcomes", "B2")
	require.NoError(t, err)
	assert.Equal(t, "", nullToday)
}

func TestResultExporter_RegressionSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.xlsx")

	exporter := &ResultExporter{
		Regression: &regression.Result{
			Summary: regression.ModelSummary{R2: 0.82, AdjR2: 0.79, NObs: 20},
			Coefficients: []regression.Coefficient{
				{Term: "intercept", Coef: 5.0},
				{Term: "velocity_FF", Coef: 0.4},
			},
			Correlation: regression.CorrelationMatrix{
				Labels: []string{"velocity_FF", "k_9"},
				Values: [][]float64{{1, 0.6}, {0.6, 1}},
			},
		},
	}
	require.NoError(t, exporter.Export(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Coefficients", "Diagnostics", "Correlation"}, f.GetSheetList())

	term, err := f.GetCellValue("Coefficients", "A3")
	require.NoError(t, err)
	assert.Equal(t, "velocity_FF", term)

	corner, err := f.GetCellValue("Correlation", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", corner)
}

func TestResultExporter_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	err := (&ResultExporter{}).Export(path)
	require.Error(t, err, "an exporter with no sections has nothing to write")
}
