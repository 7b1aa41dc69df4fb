package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pitchlens/domain/core"
	"pitchlens/domain/trend"
)

// ReportData is everything the comparison report needs.
type ReportData struct {
	PitcherID  int
	TargetDate core.GameDate
	Window     trend.Window
	Comparison []trend.ComparisonRow
	Outcomes   []trend.OutcomeComparisonRow
}

// RenderReportMarkdown builds the comparison report as markdown tables.
func RenderReportMarkdown(data ReportData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Game Report: pitcher %d, %s\n\n", data.PitcherID, data.TargetDate)
	fmt.Fprintf(&b, "Baseline: %s\n\n", windowLabel(data.Window))

	if len(data.Comparison) > 0 {
		b.WriteString("## Pitch Metrics\n\n")
		b.WriteString("| Pitch | Metric | Today | Trend | Delta | Unit |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
		for _, row := range data.Comparison {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				row.PitchLabel, row.MetricLabel,
				formatValue(row.Today), formatValue(row.TrendAvg), formatValue(row.Delta),
				row.Unit)
		}
		b.WriteString("\n")
	}

	if len(data.Outcomes) > 0 {
		b.WriteString("## Outcomes\n\n")
		b.WriteString("| Stat | Today | Trend | Delta |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, row := range data.Outcomes {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				row.StatLabel, formatValue(row.Today), formatValue(row.TrendAvg), formatValue(row.Delta))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderReportHTML renders the markdown report to HTML.
func RenderReportHTML(data ReportData) []byte {
	md := RenderReportMarkdown(data)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func windowLabel(w trend.Window) string {
	switch w.Kind {
	case trend.WindowRolling:
		return fmt.Sprintf("rolling %d days", w.NDays)
	case trend.WindowFullSeason:
		return fmt.Sprintf("full %d season", w.Season)
	default:
		return string(w.Kind)
	}
}

// formatValue renders a nullable value for display; undefined renders as a dash.
func formatValue(v core.Value) string {
	f, ok := v.Float()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}
