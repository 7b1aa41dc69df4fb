package pitch

import (
	"sort"

	"pitchlens/domain/core"
)

// AvailableSeasons lists the seasons the data collaborator can serve.
var AvailableSeasons = []int{2021, 2022, 2023, 2024, 2025}

// SeasonAvailable reports whether the collaborator carries data for year.
func SeasonAvailable(year int) bool {
	for _, s := range AvailableSeasons {
		if s == year {
			return true
		}
	}
	return false
}

// PitchEvent is one pitch as supplied by the external data collaborator.
// The analytics engine only reads it; nullable fields use core.Value.
type PitchEvent struct {
	GameDate    core.GameDate `json:"game_date"`
	PitchType   string        `json:"pitch_type"`
	Velocity    core.Value    `json:"velocity"`
	SpinRate    core.Value    `json:"spin_rate"`
	Extension   core.Value    `json:"extension"`
	BreakX      core.Value    `json:"break_x"`
	BreakZ      core.Value    `json:"break_z"`
	ReleaseX    core.Value    `json:"release_pos_x"`
	ReleaseZ    core.Value    `json:"release_pos_z"`
	Zone        int           `json:"zone"`        // 1-9 in zone, 11-14 out
	Balls       int           `json:"balls"`
	Strikes     int           `json:"strikes"`
	Description string        `json:"description"` // swing/contact descriptor
	Event       string        `json:"event"`       // plate-appearance outcome, "" mid-PA
	BattedBall  string        `json:"bb_type"`     // ground_ball, fly_ball, ... "" if not in play
	LaunchSpeed core.Value    `json:"launch_speed"`
}

// InZone reports whether the pitch crossed the strike zone (Statcast zones 1-9).
func (e PitchEvent) InZone() bool {
	return e.Zone >= 1 && e.Zone <= 9
}

// Swing and swinging-strike descriptor sets, per the Statcast vocabulary.
var swingingStrikeDescriptions = map[string]bool{
	"swinging_strike":         true,
	"swinging_strike_blocked": true,
	"foul_tip":                true,
}

var swingDescriptions = map[string]bool{
	"swinging_strike":         true,
	"swinging_strike_blocked": true,
	"foul_tip":                true,
	"foul":                    true,
	"foul_bunt":               true,
	"foul_pitchout":           true,
	"hit_into_play":           true,
	"hit_into_play_no_out":    true,
	"hit_into_play_score":     true,
}

// IsSwing reports whether the batter offered at the pitch.
func (e PitchEvent) IsSwing() bool {
	return swingDescriptions[e.Description]
}

// IsSwingingStrike reports whether the swing missed.
func (e PitchEvent) IsSwingingStrike() bool {
	return swingingStrikeDescriptions[e.Description]
}

// IsWalk reports whether the pitch ended a plate appearance in a walk.
func (e PitchEvent) IsWalk() bool {
	return e.Event == "walk" || e.Event == "intent_walk"
}

// IsStrikeout reports whether the pitch ended a plate appearance in a strikeout.
func (e PitchEvent) IsStrikeout() bool {
	return e.Event == "strikeout" || e.Event == "strikeout_double_play"
}

// RecordedOuts returns the outs credited on the pitch's event.
func (e PitchEvent) RecordedOuts() int {
	switch e.Event {
	case "":
		return 0
	case "strikeout", "field_out", "force_out", "sac_fly", "sac_bunt", "fielders_choice_out", "caught_stealing_2b", "other_out":
		return 1
	case "strikeout_double_play", "double_play", "grounded_into_double_play", "sac_fly_double_play", "sac_bunt_double_play":
		return 2
	case "triple_play":
		return 3
	default:
		return 0
	}
}

// Metric identifies a per-pitch measurement aggregated by pitch type.
type Metric string

const (
	MetricVelocity  Metric = "velocity"
	MetricSpinRate  Metric = "spin_rate"
	MetricExtension Metric = "extension"
	MetricBreakX    Metric = "break_x"
	MetricBreakZ    Metric = "break_z"
	MetricReleaseX  Metric = "release_pos_x"
	MetricReleaseZ  Metric = "release_pos_z"
)

// MetricInfo describes how a metric is labelled and formatted downstream.
type MetricInfo struct {
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// MetricCatalog maps each metric to its presentation info, in a stable order.
var MetricCatalog = map[Metric]MetricInfo{
	MetricVelocity:  {Label: "Velocity", Unit: "mph"},
	MetricSpinRate:  {Label: "Spin Rate", Unit: "rpm"},
	MetricExtension: {Label: "Extension", Unit: "ft"},
	MetricBreakX:    {Label: "Horizontal Break", Unit: "in"},
	MetricBreakZ:    {Label: "Vertical Break", Unit: "in"},
	MetricReleaseX:  {Label: "Release Point X", Unit: "ft"},
	MetricReleaseZ:  {Label: "Release Point Z", Unit: "ft"},
}

// AllMetrics returns the metric keys in catalog order.
func AllMetrics() []Metric {
	return []Metric{
		MetricVelocity, MetricSpinRate, MetricExtension,
		MetricBreakX, MetricBreakZ, MetricReleaseX, MetricReleaseZ,
	}
}

// Extract returns the event's value for the metric.
func (e PitchEvent) Extract(m Metric) core.Value {
	switch m {
	case MetricVelocity:
		return e.Velocity
	case MetricSpinRate:
		return e.SpinRate
	case MetricExtension:
		return e.Extension
	case MetricBreakX:
		return e.BreakX
	case MetricBreakZ:
		return e.BreakZ
	case MetricReleaseX:
		return e.ReleaseX
	case MetricReleaseZ:
		return e.ReleaseZ
	default:
		return core.None()
	}
}

// OutcomeStat identifies a per-game outcome rate.
type OutcomeStat string

const (
	OutcomeExitVelo OutcomeStat = "exit_velo"
	OutcomeGBPct    OutcomeStat = "gb_pct"
	OutcomeFBPct    OutcomeStat = "fb_pct"
	OutcomeBBPer9   OutcomeStat = "bb_9"
	OutcomeKPer9    OutcomeStat = "k_9"
	OutcomeWhiffPct OutcomeStat = "whiff_pct"
	OutcomeSwStrPct OutcomeStat = "swstr_pct"
	OutcomeChasePct OutcomeStat = "chase_pct"
)

// OutcomeCatalog maps each outcome stat to its presentation info.
var OutcomeCatalog = map[OutcomeStat]MetricInfo{
	OutcomeExitVelo: {Label: "Exit Velocity", Unit: "mph"},
	OutcomeGBPct:    {Label: "GB%", Unit: "%"},
	OutcomeFBPct:    {Label: "FB%", Unit: "%"},
	OutcomeBBPer9:   {Label: "BB/9", Unit: "per 9"},
	OutcomeKPer9:    {Label: "K/9", Unit: "per 9"},
	OutcomeWhiffPct: {Label: "Whiff%", Unit: "%"},
	OutcomeSwStrPct: {Label: "SwStr%", Unit: "%"},
	OutcomeChasePct: {Label: "Chase%", Unit: "%"},
}

// AllOutcomeStats returns the outcome keys in catalog order.
func AllOutcomeStats() []OutcomeStat {
	return []OutcomeStat{
		OutcomeExitVelo, OutcomeGBPct, OutcomeFBPct, OutcomeBBPer9,
		OutcomeKPer9, OutcomeWhiffPct, OutcomeSwStrPct, OutcomeChasePct,
	}
}

// pitchTypeLabels maps Statcast pitch-type codes to display names.
var pitchTypeLabels = map[string]string{
	"FF": "4-Seam FB", "SI": "Sinker", "FC": "Cutter", "SL": "Slider",
	"CU": "Curveball", "KC": "Kn. Curve", "CH": "Changeup", "FS": "Splitter",
	"ST": "Sweeper", "SV": "Slurve", "KN": "Knuckleball", "EP": "Eephus",
	"SC": "Screwball", "FO": "Forkball", "PO": "Pitchout", "CS": "Slow Curve",
}

// PitchTypeCodes lists the known pitch-type codes, sorted.
func PitchTypeCodes() []string {
	codes := make([]string, 0, len(pitchTypeLabels))
	for code := range pitchTypeLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// PitchTypeLabel returns the display name for a pitch-type code, falling
// back to the raw code for unknown types.
func PitchTypeLabel(code string) string {
	if label, ok := pitchTypeLabels[code]; ok {
		return label
	}
	return code
}
