package trend

import (
	"fmt"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
)

// WindowKind discriminates the trend baseline variants.
type WindowKind string

const (
	WindowRolling    WindowKind = "rolling"
	WindowFullSeason WindowKind = "full_season"
)

// Window is the trend baseline specification: either a rolling day count
// relative to the target date, or a full (possibly different) season.
// Construct through NewRollingWindow/NewFullSeasonWindow so malformed
// specifications are rejected up front, never interpreted at compute time.
type Window struct {
	Kind   WindowKind `json:"kind"`
	NDays  int        `json:"n_days,omitempty"`
	Season int        `json:"season,omitempty"`
}

// NewRollingWindow builds a rolling window of n calendar days.
func NewRollingWindow(nDays int) (Window, error) {
	if nDays <= 0 {
		return Window{}, core.NewInvalidWindowError(fmt.Sprintf("day count must be positive, got %d", nDays))
	}
	return Window{Kind: WindowRolling, NDays: nDays}, nil
}

// NewFullSeasonWindow builds a full-season baseline. The season may differ
// from the target game's season, enabling cross-year comparison.
func NewFullSeasonWindow(season int) (Window, error) {
	if !pitch.SeasonAvailable(season) {
		return Window{}, core.NewInvalidWindowError(fmt.Sprintf("season %d not available", season))
	}
	return Window{Kind: WindowFullSeason, Season: season}, nil
}

// Validate rejects window specifications that bypassed the constructors,
// such as ones decoded straight from JSON.
func (w Window) Validate() error {
	switch w.Kind {
	case WindowRolling:
		if w.NDays <= 0 {
			return core.NewInvalidWindowError(fmt.Sprintf("day count must be positive, got %d", w.NDays))
		}
	case WindowFullSeason:
		if !pitch.SeasonAvailable(w.Season) {
			return core.NewInvalidWindowError(fmt.Sprintf("season %d not available", w.Season))
		}
	default:
		return core.NewInvalidWindowError(fmt.Sprintf("unknown window kind %q", w.Kind))
	}
	return nil
}

// ComparisonRow is one metric-by-pitch-type line of the target-vs-trend
// table. Delta is defined iff both Today and TrendAvg are defined.
type ComparisonRow struct {
	Metric      pitch.Metric `json:"metric"`
	MetricLabel string       `json:"metric_label"`
	PitchType   string       `json:"pitch_type"`
	PitchLabel  string       `json:"pitch_label"`
	Today       core.Value   `json:"today"`
	TrendAvg    core.Value   `json:"trend_avg"`
	Delta       core.Value   `json:"delta"`
	Unit        string       `json:"unit"`
	NToday      int          `json:"n_today"`
	NTrend      int          `json:"n_trend"`
}

// OutcomeComparisonRow is the outcome-stat analogue of ComparisonRow.
type OutcomeComparisonRow struct {
	Stat      pitch.OutcomeStat `json:"stat"`
	StatLabel string            `json:"stat_label"`
	Today     core.Value        `json:"today"`
	TrendAvg  core.Value        `json:"trend_avg"`
	Delta     core.Value        `json:"delta"`
	Unit      string            `json:"unit"`
}

// Arrow reports the raw direction of a statistically unusual rolling shift.
// Goodness coloring is a presentation concern and stays out of the engine.
type Arrow string

const (
	ArrowUp   Arrow = "up"
	ArrowDown Arrow = "down"
)

// Signals carries the qualitative flags derived from rolling-vs-season
// aggregate statistics.
type Signals struct {
	Breakout       bool             `json:"breakout"`
	Divergence     bool             `json:"divergence"`
	PitchMixShift  bool             `json:"pitch_mix_shift"`
	ShiftedPitches []string         `json:"shifted_pitches"`
	Arrows         map[string]Arrow `json:"arrows"`
}
