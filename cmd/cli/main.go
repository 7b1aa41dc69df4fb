package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pitchlens/adapters/cache"
	"pitchlens/adapters/excel"
	"pitchlens/adapters/statcast"
	"pitchlens/app"
	"pitchlens/domain/core"
	"pitchlens/domain/regression"
	"pitchlens/domain/trend"
	"pitchlens/internal/config"
	"pitchlens/ports"
)

func main() {
	_ = godotenv.Load()

	var (
		pitcherID  = flag.Int("pitcher", 0, "pitcher ID")
		season     = flag.Int("season", 2024, "season year")
		targetDate = flag.String("date", "", "target game date (yyyy-mm-dd)")
		windowDays = flag.Int("window", 30, "rolling window in days (0 = full season)")
		inputFile  = flag.String("file", "", "read events from an xlsx/csv file instead of fetching")
		yCol       = flag.String("y", "", "run a regression with this dependent column")
		featsArg   = flag.String("features", "", "comma-separated feature specs, e.g. velocity_FF:lag1,k_9:roll3")
		outFile    = flag.String("out", "", "write results to this xlsx file")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	source := buildSource(cfg, *inputFile)
	analysis := app.NewAnalysisService(source)
	ctx := context.Background()

	exporter := &excel.ResultExporter{}

	if *yCol != "" {
		specs, err := parseFeatures(*featsArg)
		if err != nil {
			log.Fatalf("features: %v", err)
		}
		result, err := analysis.RunRegression(ctx, app.RegressionRequest{
			PitcherID: *pitcherID,
			Season:    *season,
			Dependent: *yCol,
			Features:  specs,
		})
		if err != nil {
			log.Fatalf("regression: %v", err)
		}
		printRegression(result)
		exporter.Regression = &result
	} else {
		if *targetDate == "" {
			flag.Usage()
			os.Exit(2)
		}
		date, err := core.ParseGameDate(*targetDate)
		if err != nil {
			log.Fatalf("date: %v", err)
		}
		window, err := buildWindow(*windowDays, *season)
		if err != nil {
			log.Fatalf("window: %v", err)
		}

		result, err := analysis.AnalyzePitchMetrics(ctx, app.PitchMetricsRequest{
			PitcherID:  *pitcherID,
			Season:     *season,
			TargetDate: date,
			Window:     window,
		})
		if err != nil {
			log.Fatalf("analysis: %v", err)
		}
		printComparison(result)
		exporter.Comparison = result.Comparison
		exporter.Outcomes = result.Outcomes
	}

	if *outFile != "" {
		if err := exporter.Export(*outFile); err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Printf("wrote %s\n", *outFile)
	}
}

func buildSource(cfg *config.Config, inputFile string) ports.SeasonSource {
	if inputFile != "" {
		return excel.NewDataReader(inputFile)
	}
	reader := statcast.NewReader(statcast.Config{
		BaseURL: cfg.Statcast.BaseURL,
		Timeout: cfg.Statcast.Timeout,
	})
	return cache.NewSeasonCache(reader, cfg.Cache.SeasonTTL)
}

func buildWindow(days, season int) (trend.Window, error) {
	if days == 0 {
		return trend.NewFullSeasonWindow(season)
	}
	return trend.NewRollingWindow(days)
}

// parseFeatures reads specs of the form column, column:lagN, or column:rollN.
func parseFeatures(arg string) ([]regression.FeatureSpec, error) {
	if arg == "" {
		return nil, fmt.Errorf("at least one feature is required")
	}

	var specs []regression.FeatureSpec
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		column, mod, hasMod := strings.Cut(part, ":")

		kind := regression.LagNone
		n := 0
		if hasMod {
			switch {
			case strings.HasPrefix(mod, "lag"):
				kind = regression.LagPoint
				if _, err := fmt.Sscanf(mod, "lag%d", &n); err != nil {
					return nil, fmt.Errorf("bad lag spec %q", part)
				}
			case strings.HasPrefix(mod, "roll"):
				kind = regression.LagRollingMean
				if _, err := fmt.Sscanf(mod, "roll%d", &n); err != nil {
					return nil, fmt.Errorf("bad rolling spec %q", part)
				}
			default:
				return nil, fmt.Errorf("unknown transform %q", mod)
			}
		}

		spec, err := regression.NewFeatureSpec(column, kind, n)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func printComparison(result app.PitchMetricsResult) {
	fmt.Printf("%-12s %-18s %10s %10s %10s\n", "Pitch", "Metric", "Today", "Trend", "Delta")
	for _, row := range result.Comparison {
		fmt.Printf("%-12s %-18s %10s %10s %10s\n",
			row.PitchLabel, row.MetricLabel,
			fmtValue(row.Today), fmtValue(row.TrendAvg), fmtValue(row.Delta))
	}
	fmt.Println()
	fmt.Printf("%-18s %10s %10s %10s\n", "Outcome", "Today", "Trend", "Delta")
	for _, row := range result.Outcomes {
		fmt.Printf("%-18s %10s %10s %10s\n",
			row.StatLabel, fmtValue(row.Today), fmtValue(row.TrendAvg), fmtValue(row.Delta))
	}
}

func printRegression(result regression.Result) {
	fmt.Printf("R2=%.4f AdjR2=%.4f F=%.3f (p=%.4f) AIC=%.2f n=%d\n",
		result.Summary.R2, result.Summary.AdjR2,
		result.Summary.FStat, result.Summary.FPValue,
		result.Summary.AIC, result.Summary.NObs)
	fmt.Printf("%-24s %10s %10s %8s %8s\n", "Term", "Coef", "StdErr", "t", "P>|t|")
	for _, c := range result.Coefficients {
		fmt.Printf("%-24s %10.4f %10.4f %8.3f %8.4f\n", c.Term, c.Coef, c.StdErr, c.TStat, c.PValue)
	}
}

func fmtValue(v core.Value) string {
	f, ok := v.Float()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}
