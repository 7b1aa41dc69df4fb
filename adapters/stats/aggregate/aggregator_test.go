package aggregate

import (
	"testing"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
)

func ev(date string, pitchType string, velo float64) pitch.PitchEvent {
	return pitch.PitchEvent{
		GameDate:    core.GameDate(date),
		PitchType:   pitchType,
		Velocity:    core.Some(velo),
		Zone:        5,
		Description: "called_strike",
	}
}

func TestBuildGameAggregates_GroupsAndSorts(t *testing.T) {
	events := []pitch.PitchEvent{
		ev("2024-06-10", "FF", 95),
		ev("2024-06-01", "FF", 94),
		ev("2024-06-10", "FF", 97),
		ev("2024-06-05", "SL", 86),
	}

	aggs := BuildGameAggregates(events)

	if len(aggs) != 3 {
		t.Fatalf("got %d aggregates, want 3 (one per distinct date)", len(aggs))
	}
	for i := 1; i < len(aggs); i++ {
		if !aggs[i-1].Date.Before(aggs[i].Date) {
			t.Errorf("aggregates not sorted: %s before %s", aggs[i-1].Date, aggs[i].Date)
		}
	}

	last := aggs[2]
	if last.Date != core.GameDate("2024-06-10") {
		t.Fatalf("last aggregate date = %s", last.Date)
	}
	if last.Pitches != 2 || last.Usage["FF"] != 2 {
		t.Errorf("usage = %+v pitches = %d", last.Usage, last.Pitches)
	}
	v, ok := last.Metric("FF", pitch.MetricVelocity).Float()
	if !ok || v != 96 {
		t.Errorf("FF velocity mean = %f (defined=%v), want 96", v, ok)
	}
}

func TestBuildGameAggregates_DoesNotMutateInput(t *testing.T) {
	events := []pitch.PitchEvent{
		ev("2024-06-10", "FF", 95),
		ev("2024-06-01", "SL", 86),
	}
	before := make([]pitch.PitchEvent, len(events))
	copy(before, events)

	BuildGameAggregates(events)

	for i := range events {
		if events[i] != before[i] {
			t.Fatalf("event %d mutated by aggregation", i)
		}
	}
}

func TestAggregateOutcomes_ZeroDenominatorsYieldNull(t *testing.T) {
	// No swings, no balls in play, no recorded outs, all in zone.
	events := []pitch.PitchEvent{
		ev("2024-06-10", "FF", 95),
		ev("2024-06-10", "FF", 94),
	}

	out := AggregateOutcomes(events)

	if out.WhiffPct.Defined() {
		t.Error("whiff% with zero swings should be null")
	}
	if out.GBPct.Defined() || out.FBPct.Defined() {
		t.Error("gb%/fb% with zero balls in play should be null")
	}
	if out.BBPer9.Defined() || out.KPer9.Defined() {
		t.Error("per-9 rates with zero recorded outs should be null")
	}
	if out.ChasePct.Defined() {
		t.Error("chase% with zero out-of-zone pitches should be null")
	}
	if out.ExitVelo.Defined() {
		t.Error("exit velocity with no batted balls should be null")
	}

	// SwStr% has a live denominator (pitch count) and is zero, not null.
	v, ok := out.SwStrPct.Float()
	if !ok || v != 0 {
		t.Errorf("swstr%% = %f (defined=%v), want 0", v, ok)
	}
}

func TestAggregateOutcomes_Rates(t *testing.T) {
	mk := func(desc, event, bb string, zone int) pitch.PitchEvent {
		return pitch.PitchEvent{
			GameDate:    core.GameDate("2024-06-10"),
			PitchType:   "FF",
			Zone:        zone,
			Description: desc,
			Event:       event,
			BattedBall:  bb,
		}
	}

	events := []pitch.PitchEvent{
		mk("swinging_strike", "strikeout", "", 5),      // swing, whiff, K, 1 out
		mk("hit_into_play", "field_out", "ground_ball", 5), // swing, GB, 1 out
		mk("hit_into_play", "single", "fly_ball", 5),   // swing, FB
		mk("ball", "walk", "", 11),                     // out of zone, no swing, BB
		mk("foul", "", "", 12),                         // out of zone swing: chase
		mk("called_strike", "field_out", "", 5),        // 1 out
	}

	out := AggregateOutcomes(events)

	// 4 swings, 1 whiff.
	if v, _ := out.WhiffPct.Float(); v != 25 {
		t.Errorf("whiff%% = %f, want 25", v)
	}
	// 2 balls in play: 1 GB, 1 FB.
	if v, _ := out.GBPct.Float(); v != 50 {
		t.Errorf("gb%% = %f, want 50", v)
	}
	if v, _ := out.FBPct.Float(); v != 50 {
		t.Errorf("fb%% = %f, want 50", v)
	}
	// 3 outs = 1 IP; one walk and one strikeout each scale to 9 per 9.
	if v, _ := out.BBPer9.Float(); v != 9 {
		t.Errorf("bb/9 = %f, want 9", v)
	}
	if v, _ := out.KPer9.Float(); v != 9 {
		t.Errorf("k/9 = %f, want 9", v)
	}
	// 2 out-of-zone pitches, 1 chased.
	if v, _ := out.ChasePct.Float(); v != 50 {
		t.Errorf("chase%% = %f, want 50", v)
	}
	// 1 whiff over 6 pitches.
	if v, _ := out.SwStrPct.Float(); v < 16.6 || v > 16.7 {
		t.Errorf("swstr%% = %f, want ~16.67", v)
	}
}

func TestBuildGameAggregates_NullMetricStaysNull(t *testing.T) {
	e := ev("2024-06-10", "FF", 95)
	e.SpinRate = core.None()

	aggs := BuildGameAggregates([]pitch.PitchEvent{e})

	if aggs[0].Metric("FF", pitch.MetricSpinRate).Defined() {
		t.Error("spin rate with no recorded samples should be null")
	}
	if aggs[0].Metric("SL", pitch.MetricVelocity).Defined() {
		t.Error("metric for an unthrown pitch type should be null")
	}
}
