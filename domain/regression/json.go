package regression

import (
	"encoding/json"
	"math"

	"pitchlens/domain/core"
)

// encoding/json rejects NaN and the infinities, and several statistics can
// legitimately take them: the F statistic on a perfect fit, VIF under exact
// collinearity, Shapiro-Wilk on a degenerate sample, Cook's distance at
// leverage one. Those marshal as null so a fitted result always serializes.

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func finiteSlice(fs []float64) []*float64 {
	out := make([]*float64, len(fs))
	for i, f := range fs {
		out[i] = finite(f)
	}
	return out
}

func (s ModelSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		R2      *float64 `json:"r2"`
		AdjR2   *float64 `json:"adj_r2"`
		FStat   *float64 `json:"f_stat"`
		FPValue *float64 `json:"f_pvalue"`
		AIC     *float64 `json:"aic"`
		NObs    int      `json:"n_obs"`
	}{finite(s.R2), finite(s.AdjR2), finite(s.FStat), finite(s.FPValue), finite(s.AIC), s.NObs})
}

func (c Coefficient) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Term   string   `json:"term"`
		Coef   *float64 `json:"coef"`
		StdErr *float64 `json:"std_err"`
		TStat  *float64 `json:"t_stat"`
		PValue *float64 `json:"p_value"`
		CILow  *float64 `json:"ci_low"`
		CIHigh *float64 `json:"ci_high"`
	}{c.Term, finite(c.Coef), finite(c.StdErr), finite(c.TStat), finite(c.PValue), finite(c.CILow), finite(c.CIHigh)})
}

func (r ShapiroResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stat   *float64 `json:"stat"`
		PValue *float64 `json:"p_value"`
		Normal bool     `json:"normal"`
	}{finite(r.Stat), finite(r.PValue), r.Normal})
}

func (r BreuschPaganResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stat          *float64 `json:"stat"`
		PValue        *float64 `json:"p_value"`
		Homoscedastic bool     `json:"homoscedastic"`
	}{finite(r.Stat), finite(r.PValue), r.Homoscedastic})
}

func (r DurbinWatsonResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stat *float64 `json:"stat"`
		OK   bool     `json:"ok"`
	}{finite(r.Stat), r.OK})
}

func (e VIFEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Term string   `json:"term"`
		VIF  *float64 `json:"vif"`
	}{e.Term, finite(e.VIF)})
}

func (e ADFEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Column     string   `json:"col"`
		ADFStat    *float64 `json:"adf_stat"`
		PValue     *float64 `json:"p_value"`
		Stationary bool     `json:"stationary"`
	}{e.Column, finite(e.ADFStat), finite(e.PValue), e.Stationary})
}

func (p PlotData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fitted        []*float64      `json:"fitted"`
		Residuals     []*float64      `json:"residuals"`
		GameDates     []core.GameDate `json:"game_dates"`
		QQTheoretical []*float64      `json:"qq_theoretical"`
		QQSample      []*float64      `json:"qq_sample"`
		Cooks         []*float64      `json:"cooks"`
	}{
		finiteSlice(p.Fitted), finiteSlice(p.Residuals), p.GameDates,
		finiteSlice(p.QQTheoretical), finiteSlice(p.QQSample), finiteSlice(p.Cooks),
	})
}

func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = finiteSlice(row)
	}
	return json.Marshal(struct {
		Labels []string     `json:"labels"`
		Values [][]*float64 `json:"values"`
	}{m.Labels, values})
}
