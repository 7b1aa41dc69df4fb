// Package regress fits ordinary least squares with an intercept term on a
// feature matrix, via QR decomposition for numerical stability.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"pitchlens/domain/core"
	"pitchlens/domain/regression"
)

// InterceptTerm names the constant column in coefficient tables.
const InterceptTerm = "intercept"

// Engine fits OLS models. Stateless; one Fit call per request.
type Engine struct{}

// NewEngine creates a regression engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Fit estimates y = Xb + e with an intercept. It fails with
// ErrSingularMatrix when the design is rank-deficient (perfectly collinear
// predictors). The matrix builder has already excluded n <= p+1.
func (e *Engine) Fit(m regression.Matrix) (regression.Fit, error) {
	n := m.NRows()
	p := len(m.Predictors)
	k := p + 1 // parameters including intercept
	if n < k+1 {
		return regression.Fit{}, core.NewInsufficientDataError(n, k+1)
	}

	design := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			design.Set(i, j+1, m.X[i][j])
		}
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), m.Y...))

	var qr mat.QR
	qr.Factorize(design)

	var betaDense mat.Dense
	if err := qr.SolveTo(&betaDense, false, yVec); err != nil {
		return regression.Fit{}, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
	}
	beta := make([]float64, k)
	for j := 0; j < k; j++ {
		beta[j] = betaDense.At(j, 0)
	}

	// (X'X)^-1 drives the coefficient covariance and the hat diagonal.
	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return regression.Fit{}, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	ssr := 0.0
	meanY := 0.0
	for _, y := range m.Y {
		meanY += y
	}
	meanY /= float64(n)
	sst := 0.0
	for i := 0; i < n; i++ {
		f := 0.0
		for j := 0; j < k; j++ {
			f += design.At(i, j) * beta[j]
		}
		fitted[i] = f
		residuals[i] = m.Y[i] - f
		ssr += residuals[i] * residuals[i]
		dy := m.Y[i] - meanY
		sst += dy * dy
	}

	df := float64(n - k)
	sigma2 := ssr / df

	r2 := 0.0
	if sst > 0 {
		r2 = 1 - ssr/sst
	}
	adjR2 := 1 - (1-r2)*float64(n-1)/df

	fStat := math.Inf(1)
	fP := 0.0
	if ssr > 0 && p > 0 {
		fStat = ((sst - ssr) / float64(p)) / sigma2
		fDist := distuv.F{D1: float64(p), D2: df}
		fP = 1 - fDist.CDF(fStat)
	}

	// Gaussian log-likelihood form of AIC, matching the usual OLS summary.
	aic := float64(n)*(math.Log(2*math.Pi)+math.Log(ssr/float64(n))+1) + 2*float64(k)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	tCrit := tDist.Quantile(0.975)

	coeffs := make([]regression.Coefficient, k)
	for j := 0; j < k; j++ {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		t := 0.0
		pVal := 1.0
		if se > 0 {
			t = beta[j] / se
			pVal = 2 * (1 - tDist.CDF(math.Abs(t)))
		}
		term := InterceptTerm
		if j > 0 {
			term = m.Predictors[j-1]
		}
		coeffs[j] = regression.Coefficient{
			Term:   term,
			Coef:   beta[j],
			StdErr: se,
			TStat:  t,
			PValue: pVal,
			CILow:  beta[j] - tCrit*se,
			CIHigh: beta[j] + tCrit*se,
		}
	}

	leverage := hatDiagonal(design, &xtxInv)

	return regression.Fit{
		Summary: regression.ModelSummary{
			R2:      r2,
			AdjR2:   adjR2,
			FStat:   fStat,
			FPValue: fP,
			AIC:     aic,
			NObs:    n,
		},
		Coefficients: coeffs,
		Fitted:       fitted,
		Residuals:    residuals,
		Leverage:     leverage,
		ResidualVar:  sigma2,
	}, nil
}

// hatDiagonal computes h_ii = x_i' (X'X)^-1 x_i for each observation.
func hatDiagonal(design *mat.Dense, xtxInv *mat.Dense) []float64 {
	n, k := design.Dims()
	h := make([]float64, n)
	tmp := make([]float64, k)
	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, design)
		for a := 0; a < k; a++ {
			s := 0.0
			for b := 0; b < k; b++ {
				s += xtxInv.At(a, b) * row[b]
			}
			tmp[a] = s
		}
		hi := 0.0
		for a := 0; a < k; a++ {
			hi += row[a] * tmp[a]
		}
		h[i] = hi
	}
	return h
}
