package trend

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/domain/trend"
)

// Stat keys the signal detector scores. Velocity is the usage-weighted
// per-game mean across pitch types; the rest are outcome rates.
const (
	signalVelocity = "velocity"
)

// mixShiftThreshold is the usage-share change (in share points) that flags
// a pitch-mix shift.
const mixShiftThreshold = 0.10

// zArrowThreshold is the |z| beyond which a rolling shift earns an arrow.
const zArrowThreshold = 1.0

// SignalDetector derives qualitative flags from rolling-vs-season
// aggregate statistics.
type SignalDetector struct {
	rollingDays int
}

// NewSignalDetector creates a detector with the given rolling window span.
func NewSignalDetector(rollingDays int) *SignalDetector {
	return &SignalDetector{rollingDays: rollingDays}
}

// Detect scores the rolling window ending at target against the season's
// per-game distribution of each stat.
func (d *SignalDetector) Detect(aggs []pitch.GameAggregate, target core.GameDate) (trend.Signals, error) {
	if _, ok := findAggregate(aggs, target); !ok {
		return trend.Signals{}, core.NewDataNotFoundError(target)
	}

	rolling := d.rollingWindow(aggs, target)
	arrows := map[string]trend.Arrow{}

	score := func(key string, perGame func(pitch.GameAggregate) core.Value) {
		if z, ok := zScore(aggs, rolling, perGame); ok {
			switch {
			case z > zArrowThreshold:
				arrows[key] = trend.ArrowUp
			case z < -zArrowThreshold:
				arrows[key] = trend.ArrowDown
			}
		}
	}

	score(signalVelocity, gameVelocity)
	for _, stat := range pitch.AllOutcomeStats() {
		stat := stat
		score(string(stat), func(g pitch.GameAggregate) core.Value {
			return g.Outcomes.Stat(stat)
		})
	}

	shifted := d.shiftedPitches(aggs, rolling)

	return trend.Signals{
		Breakout: arrows[signalVelocity] == trend.ArrowUp &&
			arrows[string(pitch.OutcomeWhiffPct)] == trend.ArrowUp &&
			arrows[string(pitch.OutcomeKPer9)] == trend.ArrowUp,
		Divergence: arrows[signalVelocity] == trend.ArrowDown &&
			arrows[string(pitch.OutcomeBBPer9)] == trend.ArrowUp,
		PitchMixShift:  len(shifted) > 0,
		ShiftedPitches: shifted,
		Arrows:         arrows,
	}, nil
}

// rollingWindow returns the games in (target-n, target], including the
// target game itself.
func (d *SignalDetector) rollingWindow(aggs []pitch.GameAggregate, target core.GameDate) []pitch.GameAggregate {
	cutoff := target.AddDays(-d.rollingDays)
	var out []pitch.GameAggregate
	for _, g := range aggs {
		if g.Date.Before(cutoff) || target.Before(g.Date) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// zScore compares the rolling mean of a per-game stat against the season's
// per-game mean and standard deviation.
func zScore(season, rolling []pitch.GameAggregate, perGame func(pitch.GameAggregate) core.Value) (float64, bool) {
	seasonVals := definedValues(season, perGame)
	rollingVals := definedValues(rolling, perGame)
	if len(seasonVals) < 2 || len(rollingVals) == 0 {
		return 0, false
	}

	seasonMean, _ := stats.Mean(seasonVals)
	seasonSD, _ := stats.StandardDeviation(seasonVals)
	if seasonSD == 0 || math.IsNaN(seasonSD) {
		return 0, false
	}
	rollingMean, _ := stats.Mean(rollingVals)

	return (rollingMean - seasonMean) / seasonSD, true
}

func definedValues(aggs []pitch.GameAggregate, perGame func(pitch.GameAggregate) core.Value) []float64 {
	var out []float64
	for _, g := range aggs {
		if v, ok := perGame(g).Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

// gameVelocity is the usage-weighted mean velocity over all pitch types.
func gameVelocity(g pitch.GameAggregate) core.Value {
	sum := 0.0
	n := 0
	for pt, count := range g.Usage {
		if v, ok := g.Metric(pt, pitch.MetricVelocity).Float(); ok {
			sum += v * float64(count)
			n += count
		}
	}
	if n == 0 {
		return core.None()
	}
	return core.Some(sum / float64(n))
}

// shiftedPitches lists pitch types whose usage share moved by more than the
// mix-shift threshold between the rolling window and the season baseline.
func (d *SignalDetector) shiftedPitches(season, rolling []pitch.GameAggregate) []string {
	seasonShare := usageShares(season)
	rollingShare := usageShares(rolling)

	seen := map[string]bool{}
	var shifted []string
	check := func(pt string) {
		if seen[pt] {
			return
		}
		seen[pt] = true
		if math.Abs(rollingShare[pt]-seasonShare[pt]) > mixShiftThreshold {
			shifted = append(shifted, pt)
		}
	}
	for pt := range seasonShare {
		check(pt)
	}
	for pt := range rollingShare {
		check(pt)
	}
	sort.Strings(shifted)
	return shifted
}

func usageShares(aggs []pitch.GameAggregate) map[string]float64 {
	counts := map[string]int{}
	total := 0
	for _, g := range aggs {
		for pt, n := range g.Usage {
			counts[pt] += n
			total += n
		}
	}
	shares := map[string]float64{}
	if total == 0 {
		return shares
	}
	for pt, n := range counts {
		shares[pt] = float64(n) / float64(total)
	}
	return shares
}
