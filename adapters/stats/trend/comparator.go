// Package trend compares a target game's aggregate against a baseline
// drawn from other games, and derives qualitative signal flags from
// rolling-vs-season statistics.
package trend

import (
	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/domain/trend"
)

// Comparator produces per-metric deltas between a target game and a trend
// baseline. It is request-scoped and holds no state.
type Comparator struct{}

// NewComparator creates a trend comparator.
func NewComparator() *Comparator {
	return &Comparator{}
}

// Baseline selects the aggregates forming the trend window's comparison
// set. For a rolling window that is every game in [target-n, target); for a
// full season it is every game of that season except the target date.
func (c *Comparator) Baseline(aggs []pitch.GameAggregate, target core.GameDate, w trend.Window) []pitch.GameAggregate {
	var out []pitch.GameAggregate
	switch w.Kind {
	case trend.WindowRolling:
		cutoff := target.AddDays(-w.NDays)
		for _, g := range aggs {
			if !g.Date.Before(cutoff) && g.Date.Before(target) {
				out = append(out, g)
			}
		}
	case trend.WindowFullSeason:
		for _, g := range aggs {
			if g.Date.Season() == w.Season && g.Date != target {
				out = append(out, g)
			}
		}
	}
	return out
}

// Compare builds the metric comparison table for the target date. It fails
// with ErrDataNotFound when the target date has no aggregate; empty or
// all-null baselines yield null trend averages and deltas instead.
func (c *Comparator) Compare(aggs []pitch.GameAggregate, target core.GameDate, w trend.Window, metrics []pitch.Metric, pitchTypes []string) ([]trend.ComparisonRow, error) {
	today, ok := findAggregate(aggs, target)
	if !ok {
		return nil, core.NewDataNotFoundError(target)
	}
	baseline := c.Baseline(aggs, target, w)

	if len(metrics) == 0 {
		metrics = pitch.AllMetrics()
	}
	if len(pitchTypes) == 0 {
		pitchTypes = pitch.PitchTypes([]pitch.GameAggregate{today})
	}

	var rows []trend.ComparisonRow
	for _, pt := range pitchTypes {
		if today.Usage[pt] == 0 {
			continue
		}
		for _, m := range metrics {
			todayVal := today.Metric(pt, m)
			if !todayVal.Defined() {
				continue
			}

			baselineVals := make([]core.Value, 0, len(baseline))
			for _, g := range baseline {
				baselineVals = append(baselineVals, g.Metric(pt, m))
			}
			trendAvg := core.MeanOf(baselineVals)

			info := pitch.MetricCatalog[m]
			rows = append(rows, trend.ComparisonRow{
				Metric:      m,
				MetricLabel: info.Label,
				PitchType:   pt,
				PitchLabel:  pitch.PitchTypeLabel(pt),
				Today:       todayVal,
				TrendAvg:    trendAvg,
				Delta:       todayVal.Sub(trendAvg),
				Unit:        info.Unit,
				NToday:      today.Usage[pt],
				NTrend:      core.CountDefined(baselineVals),
			})
		}
	}
	return rows, nil
}

// CompareOutcomes builds the outcome-stat comparison for the target date.
func (c *Comparator) CompareOutcomes(aggs []pitch.GameAggregate, target core.GameDate, w trend.Window) ([]trend.OutcomeComparisonRow, error) {
	today, ok := findAggregate(aggs, target)
	if !ok {
		return nil, core.NewDataNotFoundError(target)
	}
	baseline := c.Baseline(aggs, target, w)

	rows := make([]trend.OutcomeComparisonRow, 0, len(pitch.AllOutcomeStats()))
	for _, stat := range pitch.AllOutcomeStats() {
		baselineVals := make([]core.Value, 0, len(baseline))
		for _, g := range baseline {
			baselineVals = append(baselineVals, g.Outcomes.Stat(stat))
		}
		todayVal := today.Outcomes.Stat(stat)
		trendAvg := core.MeanOf(baselineVals)

		info := pitch.OutcomeCatalog[stat]
		rows = append(rows, trend.OutcomeComparisonRow{
			Stat:      stat,
			StatLabel: info.Label,
			Today:     todayVal,
			TrendAvg:  trendAvg,
			Delta:     todayVal.Sub(trendAvg),
			Unit:      info.Unit,
		})
	}
	return rows, nil
}

func findAggregate(aggs []pitch.GameAggregate, date core.GameDate) (pitch.GameAggregate, bool) {
	for _, g := range aggs {
		if g.Date == date {
			return g, true
		}
	}
	return pitch.GameAggregate{}, false
}
