package pitch

import (
	"sort"

	"pitchlens/domain/core"
)

// OutcomeAgg holds per-game outcome rate stats. Every field is nullable:
// a zero denominator leaves the stat undefined rather than failing.
type OutcomeAgg struct {
	ExitVelo core.Value `json:"exit_velo"`
	GBPct    core.Value `json:"gb_pct"`
	FBPct    core.Value `json:"fb_pct"`
	BBPer9   core.Value `json:"bb_9"`
	KPer9    core.Value `json:"k_9"`
	WhiffPct core.Value `json:"whiff_pct"`
	SwStrPct core.Value `json:"swstr_pct"`
	ChasePct core.Value `json:"chase_pct"`
}

// Stat returns the named outcome value.
func (o OutcomeAgg) Stat(s OutcomeStat) core.Value {
	switch s {
	case OutcomeExitVelo:
		return o.ExitVelo
	case OutcomeGBPct:
		return o.GBPct
	case OutcomeFBPct:
		return o.FBPct
	case OutcomeBBPer9:
		return o.BBPer9
	case OutcomeKPer9:
		return o.KPer9
	case OutcomeWhiffPct:
		return o.WhiffPct
	case OutcomeSwStrPct:
		return o.SwStrPct
	case OutcomeChasePct:
		return o.ChasePct
	default:
		return core.None()
	}
}

// GameAggregate summarizes one game for one pitcher. Built once per request
// by the metric aggregator and never mutated afterwards.
//
// INVARIANTS:
// - Exactly one aggregate per distinct GameDate in the event stream
// - Aggregate sequences are sorted ascending by GameDate
type GameAggregate struct {
	Date core.GameDate `json:"game_date"`

	// Metrics holds the per-pitch-type arithmetic means; null when the
	// game had no pitches of that type with the metric recorded.
	Metrics map[string]map[Metric]core.Value `json:"metrics"`

	// Usage counts pitches thrown per pitch type.
	Usage map[string]int `json:"usage"`

	Pitches  int        `json:"pitches"`
	Outcomes OutcomeAgg `json:"outcomes"`
}

// Metric returns the mean of metric m over the game's pitches of the given
// type, or null when no such pitch carried the metric.
func (g GameAggregate) Metric(pitchType string, m Metric) core.Value {
	byMetric, ok := g.Metrics[pitchType]
	if !ok {
		return core.None()
	}
	return byMetric[m]
}

// UsageShare returns the fraction of the game's pitches of the given type,
// null for a game without pitches.
func (g GameAggregate) UsageShare(pitchType string) core.Value {
	if g.Pitches == 0 {
		return core.None()
	}
	return core.Some(float64(g.Usage[pitchType]) / float64(g.Pitches))
}

// PitchTypes returns the pitch types present across a sequence of
// aggregates, sorted for stable output.
func PitchTypes(aggs []GameAggregate) []string {
	seen := map[string]bool{}
	var types []string
	for _, g := range aggs {
		for pt := range g.Usage {
			if !seen[pt] {
				seen[pt] = true
				types = append(types, pt)
			}
		}
	}
	sort.Strings(types)
	return types
}
