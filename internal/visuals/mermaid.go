package visuals

import (
	"fmt"
	"math"
	"strings"

	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
)

// GenerateForecastChart creates a Mermaid xychart-beta bar chart of the
// completion distribution (probability mass per period bucket).
func GenerateForecastChart(dist simulation.Distribution) string {
	if len(dist.Buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for _, b := range dist.Buckets {
		label := fmt.Sprintf("\"%d\"", b.Start)
		if b.End > b.Start {
			label = fmt.Sprintf("\"%d-%d\"", b.Start, b.End)
		}
		labels = append(labels, label)
		values = append(values, fmt.Sprintf("%.3f", b.Probability))
		if b.Probability > maxVal {
			maxVal = b.Probability
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Delivery Forecast (Probability by Periods to Complete)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Probability\" 0 --> %.3f\n", maxVal*1.2))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateBurnupChart creates a Mermaid xychart-beta burn-up view of the
// projection cone: one line per percentile band plus the scope line. The
// x-axis is truncated once the upper band has been flat at scope for a few
// periods to keep the text chart readable.
func GenerateBurnupChart(cone simulation.Cone, totalScope int) string {
	if len(cone.Bands) == 0 || len(cone.Bands[0].Values) == 0 {
		return ""
	}

	span := chartSpan(cone, totalScope)

	var labels []string
	for t := 1; t <= span; t++ {
		labels = append(labels, fmt.Sprintf("\"%d\"", cone.Start+t))
	}

	maxY := float64(totalScope)
	if upper := cone.Upper(); len(upper) > 0 && float64(upper[span-1]) > maxY {
		maxY = float64(upper[span-1])
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Risk Horizon (from period %d)\"\n", cone.Start))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Items Completed\" 0 --> %d\n", int(math.Ceil(maxY*1.1))))

	scope := make([]string, span)
	for i := range scope {
		scope[i] = fmt.Sprintf("%d", totalScope)
	}
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(scope, ", ")))

	for _, band := range cone.Bands {
		vals := make([]string, span)
		for i := 0; i < span; i++ {
			vals[i] = fmt.Sprintf("%d", band.Values[i])
		}
		sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(vals, ", ")))
	}
	sb.WriteString("```")
	return sb.String()
}

// chartSpan finds how many future periods are worth plotting: a few periods
// past the point where even the slowest band has landed, capped at 50 labels.
func chartSpan(cone simulation.Cone, totalScope int) int {
	horizon := len(cone.Bands[0].Values)
	span := horizon
	if lower := cone.Lower(); lower != nil {
		for t, v := range lower {
			if v >= totalScope {
				span = t + 3
				break
			}
		}
	}
	if span > horizon {
		span = horizon
	}
	if span > 50 {
		span = 50
	}
	if span < 1 {
		span = 1
	}
	return span
}
