package diagnostics

import (
	"math"
	"sort"
	"testing"

	"pitchlens/domain/regression"
)

func TestQQPoints_SortedAndSymmetric(t *testing.T) {
	theoretical, sample := qqPoints([]float64{0.5, -1.2, 0.1, 2.0, -0.3})

	if len(theoretical) != 5 || len(sample) != 5 {
		t.Fatalf("lengths = %d/%d, want 5/5", len(theoretical), len(sample))
	}
	if !sort.Float64sAreSorted(sample) {
		t.Error("sample quantiles should be sorted")
	}
	if !sort.Float64sAreSorted(theoretical) {
		t.Error("theoretical quantiles should be sorted")
	}
	// Filliben medians are symmetric around zero.
	for i := range theoretical {
		j := len(theoretical) - 1 - i
		if math.Abs(theoretical[i]+theoretical[j]) > 1e-9 {
			t.Errorf("quantiles not symmetric: %f vs %f", theoretical[i], theoretical[j])
		}
	}
}

func TestQQPoints_Empty(t *testing.T) {
	theoretical, sample := qqPoints(nil)
	if theoretical != nil || sample != nil {
		t.Error("empty residuals should produce empty plots")
	}
}

func TestCooksDistances(t *testing.T) {
	fit := regression.Fit{
		Coefficients: make([]regression.Coefficient, 2),
		Residuals:    []float64{1, -2, 0.5},
		Leverage:     []float64{0.2, 0.5, 0.1},
		ResidualVar:  1.5,
	}

	cooks := cooksDistances(fit)
	if len(cooks) != 3 {
		t.Fatalf("got %d distances, want 3", len(cooks))
	}

	// D = e^2 h / (k s^2 (1-h)^2) with k=2, s^2=1.5.
	want := 4 * 0.5 / (2 * 1.5 * 0.25)
	if math.Abs(cooks[1]-want) > 1e-9 {
		t.Errorf("cooks[1] = %f, want %f", cooks[1], want)
	}
	// Larger residual and leverage dominate.
	if !(cooks[1] > cooks[0] && cooks[0] > cooks[2]) {
		t.Errorf("ordering wrong: %v", cooks)
	}
}

func TestBuildCorrelationMatrix(t *testing.T) {
	m := regression.Matrix{
		Predictors: []string{"x1", "x2"},
		Dependent:  "y",
		X: [][]float64{
			{1, 5}, {2, 3}, {3, 8}, {4, 1}, {5, 9},
		},
		Y: []float64{2, 4, 6, 8, 10},
	}

	corr := BuildCorrelationMatrix(m)

	if len(corr.Labels) != 3 || corr.Labels[2] != "y" {
		t.Fatalf("labels = %v, want predictors then dependent", corr.Labels)
	}
	for i := range corr.Values {
		if corr.Values[i][i] != 1 {
			t.Errorf("diagonal [%d][%d] = %f, want 1", i, i, corr.Values[i][i])
		}
		for j := range corr.Values[i] {
			if math.Abs(corr.Values[i][j]-corr.Values[j][i]) > 1e-12 {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
			if corr.Values[i][j] < -1-1e-12 || corr.Values[i][j] > 1+1e-12 {
				t.Errorf("correlation outside [-1,1]: %f", corr.Values[i][j])
			}
		}
	}

	// y is an exact linear function of x1.
	if math.Abs(corr.Values[0][2]-1) > 1e-9 {
		t.Errorf("corr(x1, y) = %f, want 1", corr.Values[0][2])
	}
}

func TestBuildPlotData_CarriesDates(t *testing.T) {
	m, fit := fittedMatrix(t, 20, 5)
	pd := BuildPlotData(m, fit)

	if len(pd.GameDates) != m.NRows() {
		t.Errorf("dates length = %d, want %d", len(pd.GameDates), m.NRows())
	}
	if len(pd.QQTheoretical) != len(pd.QQSample) {
		t.Error("qq series lengths differ")
	}
	if len(pd.Cooks) != m.NRows() {
		t.Errorf("cooks length = %d, want %d", len(pd.Cooks), m.NRows())
	}
}
