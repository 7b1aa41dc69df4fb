// Package diagnostics runs the assumption-testing suite over a fitted OLS
// model and produces plot-ready derived series. Tests that cannot run on
// the available sample degrade to neutral results; the suite itself never
// fails a request.
package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"pitchlens/adapters/stats/regress"
	"pitchlens/domain/regression"
)

// alpha is the significance level shared by the pass/fail verdicts.
const alpha = 0.05

// Durbin-Watson acceptance band for "no worrying autocorrelation".
const (
	dwLow  = 1.5
	dwHigh = 2.5
)

// Suite evaluates model assumptions for one fitted regression.
type Suite struct {
	engine *regress.Engine
}

// NewSuite creates a diagnostics suite.
func NewSuite() *Suite {
	return &Suite{engine: regress.NewEngine()}
}

// Run executes every assumption test against the fit and its matrix.
func (s *Suite) Run(m regression.Matrix, fit regression.Fit) regression.Diagnostics {
	return regression.Diagnostics{
		Shapiro:      s.shapiro(fit.Residuals),
		BreuschPagan: s.breuschPagan(m, fit),
		DurbinWatson: durbinWatson(fit.Residuals),
		VIF:          s.vif(m),
		ADF:          s.adf(m),
	}
}

func (s *Suite) shapiro(residuals []float64) regression.ShapiroResult {
	w, p, err := shapiroWilk(residuals)
	if err != nil {
		return regression.ShapiroResult{Stat: math.NaN(), PValue: math.NaN()}
	}
	return regression.ShapiroResult{Stat: w, PValue: p, Normal: p >= alpha}
}

// breuschPagan regresses the squared residuals on the model's predictors
// and scores LM = n * R-squared against a chi-squared with p degrees of
// freedom.
func (s *Suite) breuschPagan(m regression.Matrix, fit regression.Fit) regression.BreuschPaganResult {
	n := m.NRows()
	p := len(m.Predictors)

	aux := regression.Matrix{
		Predictors: m.Predictors,
		Dependent:  "residual_sq",
		X:          m.X,
	}
	aux.Y = make([]float64, n)
	for i, r := range fit.Residuals {
		aux.Y[i] = r * r
	}

	auxFit, err := s.engine.Fit(aux)
	if err != nil {
		return regression.BreuschPaganResult{Stat: math.NaN(), PValue: math.NaN()}
	}

	lm := float64(n) * auxFit.Summary.R2
	chi := distuv.ChiSquared{K: float64(p)}
	pVal := 1 - chi.CDF(lm)
	return regression.BreuschPaganResult{Stat: lm, PValue: pVal, Homoscedastic: pVal >= alpha}
}

// durbinWatson computes the classic ratio over residuals in chronological
// order; values near 2 indicate no first-order autocorrelation.
func durbinWatson(residuals []float64) regression.DurbinWatsonResult {
	num := 0.0
	den := 0.0
	for i, r := range residuals {
		den += r * r
		if i > 0 {
			d := r - residuals[i-1]
			num += d * d
		}
	}
	if den == 0 {
		return regression.DurbinWatsonResult{Stat: math.NaN()}
	}
	d := num / den
	return regression.DurbinWatsonResult{Stat: d, OK: d >= dwLow && d <= dwHigh}
}

// vif regresses each predictor on the remaining predictors. Raw values
// only; thresholds are the caller's concern.
func (s *Suite) vif(m regression.Matrix) []regression.VIFEntry {
	p := len(m.Predictors)
	entries := make([]regression.VIFEntry, 0, p)
	if p < 2 {
		for _, term := range m.Predictors {
			entries = append(entries, regression.VIFEntry{Term: term, VIF: 1})
		}
		return entries
	}

	for j, term := range m.Predictors {
		aux := regression.Matrix{Dependent: term}
		for other := 0; other < p; other++ {
			if other != j {
				aux.Predictors = append(aux.Predictors, m.Predictors[other])
			}
		}
		for i := range m.X {
			row := make([]float64, 0, p-1)
			for other := 0; other < p; other++ {
				if other != j {
					row = append(row, m.X[i][other])
				}
			}
			aux.X = append(aux.X, row)
			aux.Y = append(aux.Y, m.X[i][j])
		}

		auxFit, err := s.engine.Fit(aux)
		if err != nil || auxFit.Summary.R2 >= 1 {
			// Perfect collinearity with the remaining predictors.
			entries = append(entries, regression.VIFEntry{Term: term, VIF: math.Inf(1)})
			continue
		}
		entries = append(entries, regression.VIFEntry{Term: term, VIF: 1 / (1 - auxFit.Summary.R2)})
	}
	return entries
}

// adf tests every numeric column, dependent included, for stationarity.
func (s *Suite) adf(m regression.Matrix) []regression.ADFEntry {
	columns := append([]string{}, m.Predictors...)
	columns = append(columns, m.Dependent)

	var entries []regression.ADFEntry
	for _, col := range columns {
		series, ok := m.Column(col)
		if !ok || len(series) < adfMinObs {
			continue
		}
		stat, p, err := augmentedDickeyFuller(series)
		if err != nil {
			continue
		}
		entries = append(entries, regression.ADFEntry{
			Column:     col,
			ADFStat:    stat,
			PValue:     p,
			Stationary: p < alpha,
		})
	}
	return entries
}
