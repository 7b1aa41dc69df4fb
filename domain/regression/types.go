package regression

import (
	"fmt"

	"pitchlens/domain/core"
)

// LagKind discriminates the per-predictor transform variants.
type LagKind string

const (
	LagNone        LagKind = "none"
	LagPoint       LagKind = "point_lag"
	LagRollingMean LagKind = "rolling_mean"
)

// FeatureSpec configures one predictor column. The lag transform is an
// explicit tagged union validated at construction.
type FeatureSpec struct {
	Column string  `json:"column"`
	Kind   LagKind `json:"kind"`
	N      int     `json:"n,omitempty"`
}

// NewFeatureSpec validates and builds a predictor specification.
func NewFeatureSpec(column string, kind LagKind, n int) (FeatureSpec, error) {
	if column == "" {
		return FeatureSpec{}, fmt.Errorf("feature column must be set")
	}
	switch kind {
	case LagNone:
		return FeatureSpec{Column: column, Kind: LagNone}, nil
	case LagPoint, LagRollingMean:
		if n <= 0 {
			return FeatureSpec{}, fmt.Errorf("lag count for %s must be positive, got %d", column, n)
		}
		return FeatureSpec{Column: column, Kind: kind, N: n}, nil
	default:
		return FeatureSpec{}, fmt.Errorf("unknown lag kind %q", kind)
	}
}

// Validate rejects specs that bypassed the constructor, such as ones
// decoded straight from JSON.
func (s FeatureSpec) Validate() error {
	if s.Column == "" {
		return core.NewInvalidWindowError("feature column must be set")
	}
	switch s.Kind {
	case LagNone:
	case LagPoint, LagRollingMean:
		if s.N <= 0 {
			return core.NewInvalidWindowError(fmt.Sprintf("lag count for %s must be positive, got %d", s.Column, s.N))
		}
	default:
		return core.NewInvalidWindowError(fmt.Sprintf("unknown lag kind %q", s.Kind))
	}
	return nil
}

// MaxLag returns how many leading rows the transform leaves undefined on a
// fully populated column.
func (s FeatureSpec) MaxLag() int {
	switch s.Kind {
	case LagPoint:
		return s.N
	case LagRollingMean:
		// Window shifts one game back before opening, but a single prior
		// game already yields a mean, so only the first row is lost.
		return 1
	default:
		return 0
	}
}

// Matrix is the complete-case feature matrix handed to the regression
// engine: date-ordered rows, predictors in spec order, then the dependent.
type Matrix struct {
	Dates      []core.GameDate `json:"dates"`
	Predictors []string        `json:"predictors"`
	X          [][]float64     `json:"x"` // row-major, len(Dates) x len(Predictors)
	Y          []float64       `json:"y"`
	Dependent  string          `json:"dependent"`
}

// NRows returns the surviving row count.
func (m Matrix) NRows() int {
	return len(m.Y)
}

// Column returns the named column's values: a predictor or the dependent.
func (m Matrix) Column(name string) ([]float64, bool) {
	if name == m.Dependent {
		out := make([]float64, len(m.Y))
		copy(out, m.Y)
		return out, true
	}
	for j, p := range m.Predictors {
		if p != name {
			continue
		}
		out := make([]float64, len(m.X))
		for i := range m.X {
			out[i] = m.X[i][j]
		}
		return out, true
	}
	return nil, false
}

// Coefficient is one fitted model term.
type Coefficient struct {
	Term   string  `json:"term"`
	Coef   float64 `json:"coef"`
	StdErr float64 `json:"std_err"`
	TStat  float64 `json:"t_stat"`
	PValue float64 `json:"p_value"`
	CILow  float64 `json:"ci_low"`
	CIHigh float64 `json:"ci_high"`
}

// ModelSummary carries whole-model fit statistics.
type ModelSummary struct {
	R2      float64 `json:"r2"`
	AdjR2   float64 `json:"adj_r2"`
	FStat   float64 `json:"f_stat"`
	FPValue float64 `json:"f_pvalue"`
	AIC     float64 `json:"aic"`
	NObs    int     `json:"n_obs"`
}

// Fit is the raw OLS output consumed by the diagnostics suite.
type Fit struct {
	Summary      ModelSummary  `json:"model_summary"`
	Coefficients []Coefficient `json:"coefficients"`
	Fitted       []float64     `json:"fitted"`
	Residuals    []float64     `json:"residuals"`
	Leverage     []float64     `json:"leverage"` // hat-matrix diagonal
	ResidualVar  float64       `json:"residual_var"`
}

// ShapiroResult reports the residual normality test.
type ShapiroResult struct {
	Stat   float64 `json:"stat"`
	PValue float64 `json:"p_value"`
	Normal bool    `json:"normal"`
}

// BreuschPaganResult reports the heteroscedasticity test.
type BreuschPaganResult struct {
	Stat          float64 `json:"stat"`
	PValue        float64 `json:"p_value"`
	Homoscedastic bool    `json:"homoscedastic"`
}

// DurbinWatsonResult reports residual autocorrelation.
type DurbinWatsonResult struct {
	Stat float64 `json:"stat"`
	OK   bool    `json:"ok"`
}

// VIFEntry reports multicollinearity severity for one predictor. No
// pass/fail is computed here; callers classify >5 caution, >10 severe.
type VIFEntry struct {
	Term string  `json:"term"`
	VIF  float64 `json:"vif"`
}

// ADFEntry reports the stationarity test for one column.
type ADFEntry struct {
	Column     string  `json:"col"`
	ADFStat    float64 `json:"adf_stat"`
	PValue     float64 `json:"p_value"`
	Stationary bool    `json:"stationary"`
}

// Diagnostics bundles the assumption-test suite.
type Diagnostics struct {
	Shapiro      ShapiroResult      `json:"shapiro"`
	BreuschPagan BreuschPaganResult `json:"breusch_pagan"`
	DurbinWatson DurbinWatsonResult `json:"durbin_watson"`
	VIF          []VIFEntry         `json:"vif"`
	ADF          []ADFEntry         `json:"adf"`
}

// PlotData carries plot-ready derived series.
type PlotData struct {
	Fitted        []float64       `json:"fitted"`
	Residuals     []float64       `json:"residuals"`
	GameDates     []core.GameDate `json:"game_dates"`
	QQTheoretical []float64       `json:"qq_theoretical"`
	QQSample      []float64       `json:"qq_sample"`
	Cooks         []float64       `json:"cooks"`
}

// CorrelationMatrix is the full Pearson matrix over predictors plus the
// dependent column. Symmetric, unit diagonal.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// Result is the immutable per-fit payload handed back to callers.
type Result struct {
	Summary      ModelSummary      `json:"model_summary"`
	Coefficients []Coefficient     `json:"coefficients"`
	Diagnostics  Diagnostics       `json:"diagnostics"`
	PlotData     PlotData          `json:"plot_data"`
	Correlation  CorrelationMatrix `json:"correlation_matrix"`
}
