package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"

	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
	"github.com/Theovanstratum1953/montecarlo/internal/visuals"
)

// Risk menu labels for the conventional confidence levels. Other levels fall
// back to a plain percentage label.
func labelFor(level float64) string {
	switch level {
	case 0.50:
		return "Option A (Aggressive)"
	case 0.85:
		return "Option B (Commercial)"
	case 0.95:
		return "Option C (Safe)"
	default:
		return fmt.Sprintf("P%.0f", level*100)
	}
}

func formatMarker(p simulation.Percentile) string {
	if !p.Resolved {
		return "not attainable within the horizon"
	}
	unit := "periods"
	if p.Periods == 1 {
		unit = "period"
	}
	return fmt.Sprintf("%d %s", p.Periods, unit)
}

func pulsePreview(pulse []int) string {
	limit := len(pulse)
	suffix := ""
	if limit > 10 {
		limit = 10
		suffix = ", ..."
	}
	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = fmt.Sprintf("%d", pulse[i])
	}
	return strings.Join(parts, ", ") + suffix
}

func riskMenu(sb *strings.Builder, band simulation.Band) {
	sb.WriteString("## The Risk Menu\n\n")
	for _, p := range band {
		sb.WriteString(fmt.Sprintf("- **%s**: %s (%.0f%% chance)\n", labelFor(p.Level), formatMarker(p), p.Level*100))
	}
	sb.WriteString("\n")
}

func notes(sb *strings.Builder, warnings, insights []string) {
	if len(warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range warnings {
			sb.WriteString("- " + w + "\n")
		}
		sb.WriteString("\n")
	}
	if len(insights) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, i := range insights {
			sb.WriteString("- " + i + "\n")
		}
		sb.WriteString("\n")
	}
}

// ForecastMarkdown composes the delivery forecast report: scope and pulse
// summary, the risk menu and the probability chart.
func ForecastMarkdown(res *simulation.ForecastResult, pulse []int) string {
	var sb strings.Builder
	sb.WriteString("# Probabilistic Delivery Report: Strategy Forecast\n\n")
	sb.WriteString(fmt.Sprintf("- **Scope**: %d - %d items\n", res.Scope.Min, res.Scope.Max))
	sb.WriteString(fmt.Sprintf("- **Team pulse**: %s\n", pulsePreview(pulse)))
	sb.WriteString(fmt.Sprintf("- **Trials**: %d (status: %s)\n", res.Trials, res.Status))
	if res.Distribution.UnresolvedCount > 0 {
		sb.WriteString(fmt.Sprintf("- **Unresolved trials**: %d (%.1f%%)\n", res.Distribution.UnresolvedCount, res.Distribution.UnresolvedShare*100))
	}
	sb.WriteString("\n")

	riskMenu(&sb, res.Percentiles)

	if chart := visuals.GenerateForecastChart(res.Distribution); chart != "" {
		sb.WriteString(chart + "\n\n")
	}
	notes(&sb, res.Warnings, res.Insights)
	return sb.String()
}

// HorizonMarkdown composes the risk-horizon report: project status, the risk
// menu over future periods and the burn-up cone chart.
func HorizonMarkdown(res *simulation.HorizonResult, pulse []int) string {
	var sb strings.Builder
	sb.WriteString("# Probabilistic Delivery Report: Risk Horizon\n\n")
	sb.WriteString(fmt.Sprintf("- **Project status**: period %d\n", res.Snapshot.PeriodsElapsed))
	sb.WriteString(fmt.Sprintf("- **Items done**: %d / %d\n", res.Snapshot.Completed, res.Snapshot.TotalScope))
	sb.WriteString(fmt.Sprintf("- **Pulse data**: %s\n", pulsePreview(pulse)))
	sb.WriteString(fmt.Sprintf("- **Trials**: %d over a %d-period horizon (status: %s)\n", res.Trials, res.Horizon, res.Status))
	if res.Distribution.UnresolvedCount > 0 {
		sb.WriteString(fmt.Sprintf("- **Unresolved trials**: %d (%.1f%%)\n", res.Distribution.UnresolvedCount, res.Distribution.UnresolvedShare*100))
	}
	sb.WriteString("\n")

	sb.WriteString("Completion markers count periods after the current one.\n\n")
	riskMenu(&sb, res.Percentiles)

	if chart := visuals.GenerateBurnupChart(res.Cone, res.Snapshot.TotalScope); chart != "" {
		sb.WriteString(chart + "\n\n")
	}
	notes(&sb, res.Warnings, res.Insights)
	return sb.String()
}

// Save writes the markdown report to path.
func Save(path, markdown string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// SaveAndOpen writes the report wrapped in a minimal HTML shell and opens it
// in the default browser. The markdown body is embedded in a <pre> block so
// the charts stay copy-pasteable into Mermaid-aware viewers.
func SaveAndOpen(path, markdown string) error {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Probabilistic Delivery Report</title></head>
<body style="background:#0e1117;color:#e6e6e6;font-family:monospace">
<pre>
%s
</pre>
</body>
</html>
`, htmlEscape(markdown))

	if err := Save(path, html); err != nil {
		return err
	}
	if err := browser.OpenFile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to open report in browser")
		return err
	}
	return nil
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
