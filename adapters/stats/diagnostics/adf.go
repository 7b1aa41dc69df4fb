package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"pitchlens/adapters/stats/regress"
	"pitchlens/domain/regression"
)

// adfMinObs is the smallest series the unit-root test will attempt.
const adfMinObs = 8

// augmentedDickeyFuller runs the constant-only ADF regression
//
//	dy_t = c + gamma*y_{t-1} + sum_i delta_i*dy_{t-i} + e_t
//
// choosing the lag order by AIC up to the Schwert bound, and returns the
// tau statistic with its MacKinnon (1994) approximate p-value.
func augmentedDickeyFuller(series []float64) (stat, pValue float64, err error) {
	n := len(series)
	if n < adfMinObs {
		return 0, 0, fmt.Errorf("adf requires at least %d observations, got %d", adfMinObs, n)
	}

	maxLag := int(math.Floor(12 * math.Pow(float64(n)/100, 0.25)))
	// Leave enough residual degrees of freedom at the largest lag order.
	if bound := (n - 5) / 2; maxLag > bound {
		maxLag = bound
	}
	if maxLag < 0 {
		maxLag = 0
	}

	engine := regress.NewEngine()
	bestAIC := math.Inf(1)
	var bestTau float64
	found := false

	for lag := 0; lag <= maxLag; lag++ {
		fit, fitErr := adfFit(engine, series, lag, maxLag)
		if fitErr != nil {
			continue
		}
		if fit.Summary.AIC < bestAIC {
			bestAIC = fit.Summary.AIC
			// gamma is the first predictor after the intercept.
			bestTau = fit.Coefficients[1].TStat
			found = true
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("adf regression failed for all lag orders")
	}

	return bestTau, mackinnonP(bestTau), nil
}

// adfFit assembles and fits the ADF regression at one lag order. Every
// candidate order uses the observation span of the largest order so the
// AIC values compare like for like.
func adfFit(engine *regress.Engine, series []float64, lag, maxLag int) (regression.Fit, error) {
	n := len(series)
	diffs := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = series[i] - series[i-1]
	}

	start := maxLag + 1 // first usable t index into series
	rows := n - start
	if rows < lag+4 {
		return regression.Fit{}, fmt.Errorf("too few rows for lag %d", lag)
	}

	predictors := []string{"level_lag1"}
	for i := 1; i <= lag; i++ {
		predictors = append(predictors, fmt.Sprintf("diff_lag%d", i))
	}

	m := regression.Matrix{Predictors: predictors, Dependent: "diff"}
	for t := start; t < n; t++ {
		row := make([]float64, 0, 1+lag)
		row = append(row, series[t-1])
		for i := 1; i <= lag; i++ {
			row = append(row, diffs[t-1-i])
		}
		m.X = append(m.X, row)
		m.Y = append(m.Y, diffs[t-1])
	}
	return engine.Fit(m)
}

// MacKinnon (1994) response-surface constants for the constant-only case.
var (
	mackinnonTauMax  = 2.74
	mackinnonTauMin  = -18.83
	mackinnonTauStar = -1.61
	mackinnonSmallP  = []float64{2.1659, 1.4412, 0.038269}
	mackinnonLargeP  = []float64{1.7339, 0.93202, -0.12745, -0.010368}
)

// mackinnonP maps an ADF tau statistic to an approximate p-value.
func mackinnonP(tau float64) float64 {
	if tau > mackinnonTauMax {
		return 1
	}
	if tau < mackinnonTauMin {
		return 0
	}
	coeffs := mackinnonLargeP
	if tau <= mackinnonTauStar {
		coeffs = mackinnonSmallP
	}
	z := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		z = z*tau + coeffs[i]
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	return clamp01(norm.CDF(z))
}
