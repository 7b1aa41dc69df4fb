package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/domain/regression"
	"pitchlens/domain/trend"
	"pitchlens/internal/testkit"
)

type fakeSource struct {
	seasons map[int][]pitch.PitchEvent
	err     error
}

func (f *fakeSource) FetchSeason(_ context.Context, pitcherID, _ int) ([]pitch.PitchEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.seasons[pitcherID], nil
}

func generatedService(t *testing.T) (*AnalysisService, []pitch.PitchEvent) {
	t.Helper()
	events := testkit.GenerateSeason(testkit.DefaultSeasonConfig())
	require.NotEmpty(t, events)
	source := &fakeSource{seasons: map[int][]pitch.PitchEvent{1: events}}
	return NewAnalysisService(source), events
}

func lastGameDate(events []pitch.PitchEvent) core.GameDate {
	last := events[0].GameDate
	for _, e := range events {
		if last.Before(e.GameDate) {
			last = e.GameDate
		}
	}
	return last
}

func TestAnalyzePitchMetrics(t *testing.T) {
	svc, events := generatedService(t)
	window, err := trend.NewRollingWindow(30)
	require.NoError(t, err)

	result, err := svc.AnalyzePitchMetrics(context.Background(), PitchMetricsRequest{
		PitcherID:  1,
		Season:     2024,
		TargetDate: lastGameDate(events),
		Window:     window,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Comparison, "a full season should produce comparison rows")
	assert.Len(t, result.Outcomes, len(pitch.AllOutcomeStats()))
	assert.NotEmpty(t, result.Aggregates)

	for _, row := range result.Comparison {
		if row.Delta.Defined() {
			assert.True(t, row.Today.Defined() && row.TrendAvg.Defined(),
				"defined delta requires both operands")
		}
	}
}

func TestAnalyzePitchMetrics_UnknownDate(t *testing.T) {
	svc, _ := generatedService(t)
	window, _ := trend.NewRollingWindow(30)

	_, err := svc.AnalyzePitchMetrics(context.Background(), PitchMetricsRequest{
		PitcherID:  1,
		Season:     2024,
		TargetDate: core.GameDate("2024-12-25"),
		Window:     window,
	})
	assert.True(t, core.IsDataNotFound(err), "got %v", err)
}

func TestAnalyzePitchMetrics_EmptySeason(t *testing.T) {
	svc := NewAnalysisService(&fakeSource{seasons: map[int][]pitch.PitchEvent{}})
	window, _ := trend.NewRollingWindow(30)

	_, err := svc.AnalyzePitchMetrics(context.Background(), PitchMetricsRequest{
		PitcherID:  9,
		Season:     2024,
		TargetDate: core.GameDate("2024-06-01"),
		Window:     window,
	})
	assert.True(t, core.IsDataNotFound(err), "got %v", err)
}

type seasonKeyedSource struct {
	seasons map[int][]pitch.PitchEvent // keyed by season year
}

func (s *seasonKeyedSource) FetchSeason(_ context.Context, _, season int) ([]pitch.PitchEvent, error) {
	return s.seasons[season], nil
}

func ffGame(date string, velocity float64, pitches int) []pitch.PitchEvent {
	events := make([]pitch.PitchEvent, pitches)
	for i := range events {
		events[i] = pitch.PitchEvent{
			GameDate:    core.GameDate(date),
			PitchType:   "FF",
			Velocity:    core.Some(velocity),
			Description: "called_strike",
		}
	}
	return events
}

// A full-season window naming a different year must draw its baseline from
// that year's games, not come back all null.
func TestAnalyzePitchMetrics_CrossYearBaseline(t *testing.T) {
	source := &seasonKeyedSource{seasons: map[int][]pitch.PitchEvent{
		2024: ffGame("2024-06-10", 95, 4),
		2023: append(ffGame("2023-05-01", 92, 4), ffGame("2023-05-06", 93, 4)...),
	}}
	svc := NewAnalysisService(source)

	window, err := trend.NewFullSeasonWindow(2023)
	require.NoError(t, err)

	result, err := svc.AnalyzePitchMetrics(context.Background(), PitchMetricsRequest{
		PitcherID:  1,
		Season:     2024,
		TargetDate: core.GameDate("2024-06-10"),
		Window:     window,
		Metrics:    []pitch.Metric{pitch.MetricVelocity},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Comparison)

	row := result.Comparison[0]
	today, ok := row.Today.Float()
	require.True(t, ok)
	assert.InDelta(t, 95, today, 1e-9)

	trendAvg, ok := row.TrendAvg.Float()
	require.True(t, ok, "cross-year baseline should be defined")
	assert.InDelta(t, 92.5, trendAvg, 1e-9)

	delta, ok := row.Delta.Float()
	require.True(t, ok)
	assert.InDelta(t, 2.5, delta, 1e-9)
	assert.Equal(t, 2, row.NTrend)

	// The returned aggregates stay scoped to the target season.
	for _, g := range result.Aggregates {
		assert.Equal(t, 2024, g.Date.Season())
	}
}

func TestDetectSignals_DefaultWindow(t *testing.T) {
	svc, events := generatedService(t)

	signals, err := svc.DetectSignals(context.Background(), SignalsRequest{
		PitcherID:  1,
		Season:     2024,
		TargetDate: lastGameDate(events),
	})
	require.NoError(t, err)
	assert.NotNil(t, signals.Arrows)
}

func TestDetectSignals_NegativeWindow(t *testing.T) {
	svc, events := generatedService(t)

	_, err := svc.DetectSignals(context.Background(), SignalsRequest{
		PitcherID:   1,
		Season:      2024,
		TargetDate:  lastGameDate(events),
		RollingDays: -3,
	})
	assert.True(t, core.IsInvalidWindow(err), "got %v", err)
}

func TestRunRegression_EndToEnd(t *testing.T) {
	svc, _ := generatedService(t)

	spec, err := regression.NewFeatureSpec("velocity", regression.LagRollingMean, 3)
	require.NoError(t, err)

	result, err := svc.RunRegression(context.Background(), RegressionRequest{
		PitcherID: 1,
		Season:    2024,
		Dependent: "swstr_pct",
		Features:  []regression.FeatureSpec{spec},
	})
	require.NoError(t, err)

	assert.Equal(t, "intercept", result.Coefficients[0].Term)
	assert.Len(t, result.Coefficients, 2)
	assert.Greater(t, result.Summary.NObs, 3)
	assert.Len(t, result.PlotData.Residuals, result.Summary.NObs)
	assert.Equal(t, []string{"velocity", "swstr_pct"}, result.Correlation.Labels)
	assert.Len(t, result.Diagnostics.VIF, 1)
}

func TestRunRegression_InsufficientRows(t *testing.T) {
	cfg := testkit.DefaultSeasonConfig()
	cfg.Games = 3
	events := testkit.GenerateSeason(cfg)
	svc := NewAnalysisService(&fakeSource{seasons: map[int][]pitch.PitchEvent{1: events}})

	spec, _ := regression.NewFeatureSpec("velocity", regression.LagPoint, 1)
	_, err := svc.RunRegression(context.Background(), RegressionRequest{
		PitcherID: 1,
		Season:    2024,
		Dependent: "swstr_pct",
		Features:  []regression.FeatureSpec{spec},
	})
	assert.True(t, core.IsInsufficientData(err), "got %v", err)
}

func TestFeatureColumns(t *testing.T) {
	svc, _ := generatedService(t)

	columns, err := svc.FeatureColumns(context.Background(), 1, 2024)
	require.NoError(t, err)
	assert.Contains(t, columns, "velocity")
	assert.Contains(t, columns, "velocity_FF")
	assert.Contains(t, columns, "k_9")
}
