package diagnostics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"pitchlens/domain/regression"
)

// BuildPlotData derives the plot-ready series from a fit: fitted-vs-
// residual pairs, normal Q-Q quantiles, Cook's distances, and residuals
// keyed to their game dates.
func BuildPlotData(m regression.Matrix, fit regression.Fit) regression.PlotData {
	qqTheoretical, qqSample := qqPoints(fit.Residuals)
	return regression.PlotData{
		Fitted:        fit.Fitted,
		Residuals:     fit.Residuals,
		GameDates:     m.Dates,
		QQTheoretical: qqTheoretical,
		QQSample:      qqSample,
		Cooks:         cooksDistances(fit),
	}
}

// qqPoints pairs Filliben order-statistic medians with sorted residuals
// for a normal Q-Q plot.
func qqPoints(residuals []float64) (theoretical, sample []float64) {
	n := len(residuals)
	if n == 0 {
		return nil, nil
	}
	sample = append([]float64(nil), residuals...)
	sort.Float64s(sample)

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	theoretical = make([]float64, n)
	fn := float64(n)
	for i := 0; i < n; i++ {
		var u float64
		switch i {
		case 0:
			u = 1 - math.Pow(0.5, 1/fn)
		case n - 1:
			u = math.Pow(0.5, 1/fn)
		default:
			u = (float64(i+1) - 0.3175) / (fn + 0.365)
		}
		theoretical[i] = norm.Quantile(u)
	}
	return theoretical, sample
}

// cooksDistances computes per-observation influence:
// D_i = e_i^2 * h_i / (k * s^2 * (1 - h_i)^2), k = model parameter count.
func cooksDistances(fit regression.Fit) []float64 {
	k := float64(len(fit.Coefficients))
	s2 := fit.ResidualVar
	out := make([]float64, len(fit.Residuals))
	if s2 == 0 {
		return out
	}
	for i, e := range fit.Residuals {
		h := fit.Leverage[i]
		denom := k * s2 * (1 - h) * (1 - h)
		if denom == 0 {
			continue
		}
		out[i] = e * e * h / denom
	}
	return out
}

// BuildCorrelationMatrix computes the full Pearson matrix over every
// predictor column plus the dependent. Symmetric with a unit diagonal.
func BuildCorrelationMatrix(m regression.Matrix) regression.CorrelationMatrix {
	labels := append([]string{}, m.Predictors...)
	labels = append(labels, m.Dependent)

	n := m.NRows()
	cols := len(labels)
	data := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < len(m.Predictors); j++ {
			data.Set(i, j, m.X[i][j])
		}
		data.Set(i, cols-1, m.Y[i])
	}

	corr := mat.NewSymDense(cols, nil)
	stat.CorrelationMatrix(corr, data, nil)

	values := make([][]float64, cols)
	for i := 0; i < cols; i++ {
		values[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			if i == j {
				values[i][j] = 1
				continue
			}
			values[i][j] = corr.At(i, j)
		}
	}
	return regression.CorrelationMatrix{Labels: labels, Values: values}
}
