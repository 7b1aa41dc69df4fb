// Package features builds the per-game numeric feature matrix for the
// regression engine, applying per-column lag and rolling-window transforms
// with strict leakage avoidance: no transformed cell may see its own row's
// raw value.
package features

import (
	"fmt"
	"sort"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/domain/regression"
)

// Row is one game's candidate numeric columns, keyed by column name.
// Values are nullable; missing stats stay null and fall to the
// complete-case filter.
type Row struct {
	Date   core.GameDate
	Values map[string]core.Value
}

// Overall per-game metric columns use the metric key directly; per-pitch-
// type columns append the pitch-type code, e.g. "velocity_FF".
func metricColumn(m pitch.Metric, pitchType string) string {
	if pitchType == "" {
		return string(m)
	}
	return fmt.Sprintf("%s_%s", m, pitchType)
}

// BuildRows flattens game aggregates into candidate regression rows:
// overall metric means, per-pitch-type metric means, and outcome stats.
func BuildRows(aggs []pitch.GameAggregate) []Row {
	pitchTypes := pitch.PitchTypes(aggs)

	rows := make([]Row, 0, len(aggs))
	for _, g := range aggs {
		values := map[string]core.Value{}

		for _, m := range pitch.AllMetrics() {
			values[metricColumn(m, "")] = overallMean(g, m)
		}
		for _, ptType := range pitchTypes {
			for _, m := range pitch.AllMetrics() {
				values[metricColumn(m, ptType)] = g.Metric(ptType, m)
			}
		}
		for _, stat := range pitch.AllOutcomeStats() {
			values[string(stat)] = g.Outcomes.Stat(stat)
		}

		rows = append(rows, Row{Date: g.Date, Values: values})
	}
	return rows
}

// overallMean is the usage-weighted mean of a metric across pitch types.
func overallMean(g pitch.GameAggregate, m pitch.Metric) core.Value {
	sum := 0.0
	n := 0
	for pt, count := range g.Usage {
		if v, ok := g.Metric(pt, m).Float(); ok {
			sum += v * float64(count)
			n += count
		}
	}
	if n == 0 {
		return core.None()
	}
	return core.Some(sum / float64(n))
}

// Columns lists the candidate column names present in the rows, sorted.
func Columns(rows []Row) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range rows {
		for name := range r.Values {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// Builder assembles the complete-case feature matrix.
type Builder struct{}

// NewBuilder creates a feature matrix builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build applies each predictor's lag transform, drops incomplete rows, and
// returns the matrix. Fails with ErrInsufficientData when fewer than
// predictors+2 complete rows survive.
func (b *Builder) Build(rows []Row, dependent string, specs []regression.FeatureSpec) (regression.Matrix, error) {
	if len(specs) == 0 {
		return regression.Matrix{}, core.NewInvalidWindowError("at least one predictor required")
	}
	// Specs decoded from JSON bypass NewFeatureSpec; re-check them here so a
	// bad lag count or kind surfaces as a typed error, never a panic or a
	// silently untransformed column.
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return regression.Matrix{}, err
		}
	}

	ordered := make([]Row, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	transformed := make([][]core.Value, len(specs))
	for j, spec := range specs {
		raw := columnValues(ordered, spec.Column)
		transformed[j] = applyLag(raw, spec)
	}
	yVals := columnValues(ordered, dependent)

	// Complete-case policy: a row survives only when the dependent and
	// every transformed predictor are defined.
	matrix := regression.Matrix{
		Predictors: columnNames(specs),
		Dependent:  dependent,
	}
	for i := range ordered {
		y, ok := yVals[i].Float()
		if !ok {
			continue
		}
		xRow := make([]float64, len(specs))
		complete := true
		for j := range specs {
			x, ok := transformed[j][i].Float()
			if !ok {
				complete = false
				break
			}
			xRow[j] = x
		}
		if !complete {
			continue
		}
		matrix.Dates = append(matrix.Dates, ordered[i].Date)
		matrix.X = append(matrix.X, xRow)
		matrix.Y = append(matrix.Y, y)
	}

	required := len(specs) + 2
	if matrix.NRows() < required {
		return regression.Matrix{}, core.NewInsufficientDataError(matrix.NRows(), required)
	}
	return matrix, nil
}

func columnValues(rows []Row, column string) []core.Value {
	out := make([]core.Value, len(rows))
	for i, r := range rows {
		out[i] = r.Values[column]
	}
	return out
}

func columnNames(specs []regression.FeatureSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Column
	}
	return names
}

// applyLag transforms one column.
//
// PointLag(n): row i takes the raw value from row i-n.
// RollingMean(n): row i takes the mean of raw values over rows [i-n, i-1].
// The window never includes row i itself; the one-game shift before the
// window opens holds for every n, so a nominally rolling feature can never
// carry same-game information into the model.
func applyLag(raw []core.Value, spec regression.FeatureSpec) []core.Value {
	switch spec.Kind {
	case regression.LagPoint:
		out := make([]core.Value, len(raw))
		for i := range raw {
			if i < spec.N {
				out[i] = core.None()
				continue
			}
			out[i] = raw[i-spec.N]
		}
		return out
	case regression.LagRollingMean:
		out := make([]core.Value, len(raw))
		for i := range raw {
			lo := i - spec.N
			if lo < 0 {
				lo = 0
			}
			window := raw[lo:i]
			out[i] = core.MeanOf(window)
		}
		return out
	default:
		out := make([]core.Value, len(raw))
		copy(out, raw)
		return out
	}
}
