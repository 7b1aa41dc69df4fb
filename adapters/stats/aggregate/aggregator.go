// Package aggregate converts a pitcher-season's raw pitch events into one
// aggregate record per game date. Aggregation is a pure function of the
// event slice and always completes: zero denominators resolve to nulls.
package aggregate

import (
	"sort"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
)

// BuildGameAggregates groups events by game date and summarizes each game,
// returning aggregates sorted ascending by date.
func BuildGameAggregates(events []pitch.PitchEvent) []pitch.GameAggregate {
	byDate := map[core.GameDate][]pitch.PitchEvent{}
	for _, e := range events {
		byDate[e.GameDate] = append(byDate[e.GameDate], e)
	}

	dates := make([]core.GameDate, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	aggs := make([]pitch.GameAggregate, 0, len(dates))
	for _, d := range dates {
		aggs = append(aggs, aggregateGame(d, byDate[d]))
	}
	return aggs
}

// AggregateOutcomes summarizes outcome rates over an arbitrary event slice
// (one game, a trend window, or a whole season).
func AggregateOutcomes(events []pitch.PitchEvent) pitch.OutcomeAgg {
	var (
		pitches     = len(events)
		swings      int
		swStrikes   int
		outOfZone   int
		chases      int
		inPlay      int
		groundBalls int
		flyBalls    int
		walks       int
		strikeouts  int
		outs        int
		launch      []core.Value
	)

	for _, e := range events {
		if e.IsSwing() {
			swings++
		}
		if e.IsSwingingStrike() {
			swStrikes++
		}
		if !e.InZone() {
			outOfZone++
			if e.IsSwing() {
				chases++
			}
		}
		if e.BattedBall != "" {
			inPlay++
			switch e.BattedBall {
			case "ground_ball":
				groundBalls++
			case "fly_ball":
				flyBalls++
			}
		}
		if e.IsWalk() {
			walks++
		}
		if e.IsStrikeout() {
			strikeouts++
		}
		outs += e.RecordedOuts()
		if e.LaunchSpeed.Defined() {
			launch = append(launch, e.LaunchSpeed)
		}
	}

	// IP is estimated from recorded outs; per-9 rates are undefined for a
	// game with no recorded outs.
	ip := float64(outs) / 3.0

	return pitch.OutcomeAgg{
		ExitVelo: core.MeanOf(launch),
		GBPct:    core.Ratio(float64(groundBalls), float64(inPlay)),
		FBPct:    core.Ratio(float64(flyBalls), float64(inPlay)),
		BBPer9:   per9(walks, ip),
		KPer9:    per9(strikeouts, ip),
		WhiffPct: core.Ratio(float64(swStrikes), float64(swings)),
		SwStrPct: core.Ratio(float64(swStrikes), float64(pitches)),
		ChasePct: core.Ratio(float64(chases), float64(outOfZone)),
	}
}

func per9(count int, ip float64) core.Value {
	if ip == 0 {
		return core.None()
	}
	return core.Some(9 * float64(count) / ip)
}

func aggregateGame(date core.GameDate, events []pitch.PitchEvent) pitch.GameAggregate {
	metrics := map[string]map[pitch.Metric]core.Value{}
	usage := map[string]int{}

	samples := map[string]map[pitch.Metric][]core.Value{}
	for _, e := range events {
		usage[e.PitchType]++
		byMetric, ok := samples[e.PitchType]
		if !ok {
			byMetric = map[pitch.Metric][]core.Value{}
			samples[e.PitchType] = byMetric
		}
		for _, m := range pitch.AllMetrics() {
			if v := e.Extract(m); v.Defined() {
				byMetric[m] = append(byMetric[m], v)
			}
		}
	}

	for pt, byMetric := range samples {
		means := map[pitch.Metric]core.Value{}
		for _, m := range pitch.AllMetrics() {
			means[m] = core.MeanOf(byMetric[m])
		}
		metrics[pt] = means
	}

	return pitch.GameAggregate{
		Date:     date,
		Metrics:  metrics,
		Usage:    usage,
		Pitches:  len(events),
		Outcomes: AggregateOutcomes(events),
	}
}
