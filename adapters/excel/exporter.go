package excel

import (
	"github.com/xuri/excelize/v2"

	"pitchlens/domain/core"
	"pitchlens/domain/regression"
	"pitchlens/domain/trend"
	"pitchlens/internal/errors"
	"pitchlens/ports"
)

var _ ports.ResultExporter = (*ResultExporter)(nil)

// ResultExporter writes comparison and regression output to a workbook,
// one sheet per section. Sections with no data are skipped.
type ResultExporter struct {
	Comparison []trend.ComparisonRow
	Outcomes   []trend.OutcomeComparisonRow
	Regression *regression.Result
}

// Export writes the workbook to path.
func (e *ResultExporter) Export(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	addSheet := func(name string) error {
		if first {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
			return nil
		}
		_, err := f.NewSheet(name)
		return err
	}

	if len(e.Comparison) > 0 {
		if err := addSheet("Comparison"); err != nil {
			return errors.Wrap(err, "failed to create comparison sheet")
		}
		if err := e.writeComparison(f); err != nil {
			return err
		}
	}
	if len(e.Outcomes) > 0 {
		if err := addSheet("Outcomes"); err != nil {
			return errors.Wrap(err, "failed to create outcomes sheet")
		}
		if err := e.writeOutcomes(f); err != nil {
			return err
		}
	}
	if e.Regression != nil {
		for _, name := range []string{"Coefficients", "Diagnostics", "Correlation"} {
			if err := addSheet(name); err != nil {
				return errors.Wrapf(err, "failed to create %s sheet", name)
			}
		}
		if err := e.writeRegression(f); err != nil {
			return err
		}
	}
	if first {
		return errors.InvalidInput("nothing to export")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "failed to save workbook")
	}
	return nil
}

func (e *ResultExporter) writeComparison(f *excelize.File) error {
	header := []interface{}{"Pitch Type", "Metric", "Today", "Trend Avg", "Delta", "Unit", "N Today", "N Trend"}
	if err := writeRow(f, "Comparison", 1, header); err != nil {
		return err
	}
	for i, row := range e.Comparison {
		cells := []interface{}{
			row.PitchLabel, row.MetricLabel,
			valueCell(row.Today), valueCell(row.TrendAvg), valueCell(row.Delta),
			row.Unit, row.NToday, row.NTrend,
		}
		if err := writeRow(f, "Comparison", i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (e *ResultExporter) writeOutcomes(f *excelize.File) error {
	header := []interface{}{"Stat", "Today", "Trend Avg", "Delta", "Unit"}
	if err := writeRow(f, "Outcomes", 1, header); err != nil {
		return err
	}
	for i, row := range e.Outcomes {
		cells := []interface{}{
			row.StatLabel, valueCell(row.Today), valueCell(row.TrendAvg), valueCell(row.Delta), row.Unit,
		}
		if err := writeRow(f, "Outcomes", i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (e *ResultExporter) writeRegression(f *excelize.File) error {
	res := e.Regression

	header := []interface{}{"Term", "Coef", "Std Err", "t", "P>|t|", "CI Low", "CI High"}
	if err := writeRow(f, "Coefficients", 1, header); err != nil {
		return err
	}
	for i, c := range res.Coefficients {
		cells := []interface{}{c.Term, c.Coef, c.StdErr, c.TStat, c.PValue, c.CILow, c.CIHigh}
		if err := writeRow(f, "Coefficients", i+2, cells); err != nil {
			return err
		}
	}
	summaryRow := len(res.Coefficients) + 3
	summary := []interface{}{
		"R2", res.Summary.R2, "Adj R2", res.Summary.AdjR2,
		"F", res.Summary.FStat, "AIC", res.Summary.AIC, "N", res.Summary.NObs,
	}
	if err := writeRow(f, "Coefficients", summaryRow, summary); err != nil {
		return err
	}

	d := res.Diagnostics
	diagRows := [][]interface{}{
		{"Test", "Stat", "P-Value", "Verdict"},
		{"Shapiro-Wilk", d.Shapiro.Stat, d.Shapiro.PValue, verdict(d.Shapiro.Normal, "normal", "non-normal")},
		{"Breusch-Pagan", d.BreuschPagan.Stat, d.BreuschPagan.PValue, verdict(d.BreuschPagan.Homoscedastic, "homoscedastic", "heteroscedastic")},
		{"Durbin-Watson", d.DurbinWatson.Stat, "", verdict(d.DurbinWatson.OK, "ok", "autocorrelated")},
	}
	for _, v := range d.VIF {
		diagRows = append(diagRows, []interface{}{"VIF " + v.Term, v.VIF, "", ""})
	}
	for _, a := range d.ADF {
		diagRows = append(diagRows, []interface{}{"ADF " + a.Column, a.ADFStat, a.PValue, verdict(a.Stationary, "stationary", "non-stationary")})
	}
	for i, cells := range diagRows {
		if err := writeRow(f, "Diagnostics", i+1, cells); err != nil {
			return err
		}
	}

	corrHeader := make([]interface{}, 0, len(res.Correlation.Labels)+1)
	corrHeader = append(corrHeader, "")
	for _, label := range res.Correlation.Labels {
		corrHeader = append(corrHeader, label)
	}
	if err := writeRow(f, "Correlation", 1, corrHeader); err != nil {
		return err
	}
	for i, label := range res.Correlation.Labels {
		cells := make([]interface{}, 0, len(res.Correlation.Labels)+1)
		cells = append(cells, label)
		for _, v := range res.Correlation.Values[i] {
			cells = append(cells, v)
		}
		if err := writeRow(f, "Correlation", i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrapf(err, "bad coordinates for row %d", row)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return errors.Wrapf(err, "failed to write %s!%s", sheet, cell)
	}
	return nil
}

// valueCell renders a nullable value, blank when undefined.
func valueCell(v core.Value) interface{} {
	f, ok := v.Float()
	if !ok {
		return ""
	}
	return f
}

func verdict(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
