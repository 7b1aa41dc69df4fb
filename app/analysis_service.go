// Package app wires the statistical components into request-scoped
// services. Services hold no per-request state; every call is a pure
// function of the supplied events and parameters.
package app

import (
	"context"

	"pitchlens/adapters/stats/aggregate"
	"pitchlens/adapters/stats/diagnostics"
	"pitchlens/adapters/stats/features"
	"pitchlens/adapters/stats/regress"
	statstrend "pitchlens/adapters/stats/trend"
	"pitchlens/domain/core"
	"pitchlens/domain/pitch"
	"pitchlens/domain/regression"
	"pitchlens/domain/trend"
	"pitchlens/ports"
)

// defaultSignalWindowDays is the rolling span the signal detector scores
// when the caller does not choose one.
const defaultSignalWindowDays = 30

// AnalysisService runs the full pipeline for one pitcher-season: events
// through aggregation, comparison, signals, and regression.
type AnalysisService struct {
	source     ports.SeasonSource
	comparator *statstrend.Comparator
	builder    *features.Builder
	engine     *regress.Engine
	suite      *diagnostics.Suite
}

// NewAnalysisService creates the service around a season source.
func NewAnalysisService(source ports.SeasonSource) *AnalysisService {
	return &AnalysisService{
		source:     source,
		comparator: statstrend.NewComparator(),
		builder:    features.NewBuilder(),
		engine:     regress.NewEngine(),
		suite:      diagnostics.NewSuite(),
	}
}

// PitchMetricsRequest parameterizes a target-vs-trend comparison.
type PitchMetricsRequest struct {
	PitcherID  int            `json:"pitcher_id"`
	Season     int            `json:"season"`
	TargetDate core.GameDate  `json:"target_date"`
	Window     trend.Window   `json:"window"`
	Metrics    []pitch.Metric `json:"metrics"`
	PitchTypes []string       `json:"pitch_types"`
}

// PitchMetricsResult is the comparison payload handed back to the caller.
type PitchMetricsResult struct {
	Comparison []trend.ComparisonRow        `json:"comparison"`
	Outcomes   []trend.OutcomeComparisonRow `json:"outcomes"`
	Aggregates []pitch.GameAggregate        `json:"aggregates"`
}

// AnalyzePitchMetrics fetches the season, aggregates it, and compares the
// target game against the requested trend baseline.
func (s *AnalysisService) AnalyzePitchMetrics(ctx context.Context, req PitchMetricsRequest) (PitchMetricsResult, error) {
	if err := req.Window.Validate(); err != nil {
		return PitchMetricsResult{}, err
	}

	aggs, err := s.seasonAggregates(ctx, req.PitcherID, req.Season)
	if err != nil {
		return PitchMetricsResult{}, err
	}

	// A full-season window may name a different year than the target game;
	// fetch that season too so cross-year baselines have games to draw on.
	// An empty trend season is not an error, it yields null trend averages.
	compareAggs := aggs
	if req.Window.Kind == trend.WindowFullSeason && req.Window.Season != req.Season {
		trendEvents, err := s.source.FetchSeason(ctx, req.PitcherID, req.Window.Season)
		if err != nil {
			return PitchMetricsResult{}, err
		}
		compareAggs = append(append([]pitch.GameAggregate{}, aggs...), aggregate.BuildGameAggregates(trendEvents)...)
	}

	comparison, err := s.comparator.Compare(compareAggs, req.TargetDate, req.Window, req.Metrics, req.PitchTypes)
	if err != nil {
		return PitchMetricsResult{}, err
	}
	outcomes, err := s.comparator.CompareOutcomes(compareAggs, req.TargetDate, req.Window)
	if err != nil {
		return PitchMetricsResult{}, err
	}

	return PitchMetricsResult{
		Comparison: comparison,
		Outcomes:   outcomes,
		Aggregates: aggs,
	}, nil
}

// SignalsRequest parameterizes trend signal detection.
type SignalsRequest struct {
	PitcherID   int           `json:"pitcher_id"`
	Season      int           `json:"season"`
	TargetDate  core.GameDate `json:"target_date"`
	RollingDays int           `json:"rolling_days"`
}

// DetectSignals scores the rolling window ending at the target date
// against the full season.
func (s *AnalysisService) DetectSignals(ctx context.Context, req SignalsRequest) (trend.Signals, error) {
	days := req.RollingDays
	if days == 0 {
		days = defaultSignalWindowDays
	}
	if days < 0 {
		return trend.Signals{}, core.NewInvalidWindowError("rolling days must be positive")
	}

	aggs, err := s.seasonAggregates(ctx, req.PitcherID, req.Season)
	if err != nil {
		return trend.Signals{}, err
	}
	return statstrend.NewSignalDetector(days).Detect(aggs, req.TargetDate)
}

// RegressionRequest parameterizes a per-game OLS fit.
type RegressionRequest struct {
	PitcherID int                      `json:"pitcher_id"`
	Season    int                      `json:"season"`
	Dependent string                   `json:"y_col"`
	Features  []regression.FeatureSpec `json:"features"`
}

// RunRegression builds the lagged feature matrix, fits OLS, and runs the
// full diagnostics suite.
func (s *AnalysisService) RunRegression(ctx context.Context, req RegressionRequest) (regression.Result, error) {
	aggs, err := s.seasonAggregates(ctx, req.PitcherID, req.Season)
	if err != nil {
		return regression.Result{}, err
	}
	return s.RegressAggregates(aggs, req.Dependent, req.Features)
}

// RegressAggregates runs the regression stage on already-built aggregates.
// Exposed so batch callers can reuse aggregates across stages.
func (s *AnalysisService) RegressAggregates(aggs []pitch.GameAggregate, dependent string, specs []regression.FeatureSpec) (regression.Result, error) {
	rows := features.BuildRows(aggs)
	matrix, err := s.builder.Build(rows, dependent, specs)
	if err != nil {
		return regression.Result{}, err
	}

	fit, err := s.engine.Fit(matrix)
	if err != nil {
		return regression.Result{}, err
	}

	return regression.Result{
		Summary:      fit.Summary,
		Coefficients: fit.Coefficients,
		Diagnostics:  s.suite.Run(matrix, fit),
		PlotData:     diagnostics.BuildPlotData(matrix, fit),
		Correlation:  diagnostics.BuildCorrelationMatrix(matrix),
	}, nil
}

// GameDates lists the dates the pitcher appeared on, ascending, so callers
// can discover valid target dates.
func (s *AnalysisService) GameDates(ctx context.Context, pitcherID, season int) ([]core.GameDate, error) {
	aggs, err := s.seasonAggregates(ctx, pitcherID, season)
	if err != nil {
		return nil, err
	}
	dates := make([]core.GameDate, len(aggs))
	for i, g := range aggs {
		dates[i] = g.Date
	}
	return dates, nil
}

// SeasonPitchTypes lists the pitch types the pitcher threw that season.
func (s *AnalysisService) SeasonPitchTypes(ctx context.Context, pitcherID, season int) ([]string, error) {
	aggs, err := s.seasonAggregates(ctx, pitcherID, season)
	if err != nil {
		return nil, err
	}
	return pitch.PitchTypes(aggs), nil
}

// FeatureColumns lists the candidate regression columns for a season.
func (s *AnalysisService) FeatureColumns(ctx context.Context, pitcherID, season int) ([]string, error) {
	aggs, err := s.seasonAggregates(ctx, pitcherID, season)
	if err != nil {
		return nil, err
	}
	return features.Columns(features.BuildRows(aggs)), nil
}

func (s *AnalysisService) seasonAggregates(ctx context.Context, pitcherID, season int) ([]pitch.GameAggregate, error) {
	events, err := s.source.FetchSeason(ctx, pitcherID, season)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, core.NewDataNotFoundError(core.GameDate(""))
	}
	return aggregate.BuildGameAggregates(events), nil
}
