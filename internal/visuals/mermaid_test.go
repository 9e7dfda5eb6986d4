package visuals

import (
	"strings"
	"testing"

	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
)

func TestGenerateForecastChart(t *testing.T) {
	dist := simulation.Distribution{
		Buckets: []simulation.Bucket{
			{Start: 4, End: 4, Count: 2, Probability: 0.2},
			{Start: 5, End: 5, Count: 6, Probability: 0.6},
			{Start: 6, End: 6, Count: 2, Probability: 0.2},
		},
	}

	chart := GenerateForecastChart(dist)
	if !strings.Contains(chart, "xychart-beta") {
		t.Errorf("Expected a Mermaid xychart, got:\n%s", chart)
	}
	if !strings.Contains(chart, `x-axis ["4", "5", "6"]`) {
		t.Errorf("Expected per-period labels, got:\n%s", chart)
	}
	if !strings.Contains(chart, "bar [0.200, 0.600, 0.200]") {
		t.Errorf("Expected probability bars, got:\n%s", chart)
	}
}

func TestGenerateForecastChart_WideBucketLabels(t *testing.T) {
	dist := simulation.Distribution{
		Buckets: []simulation.Bucket{{Start: 4, End: 6, Count: 10, Probability: 1.0}},
	}
	chart := GenerateForecastChart(dist)
	if !strings.Contains(chart, `"4-6"`) {
		t.Errorf("Expected range label for wide bucket, got:\n%s", chart)
	}
}

func TestGenerateForecastChart_Empty(t *testing.T) {
	if chart := GenerateForecastChart(simulation.Distribution{}); chart != "" {
		t.Errorf("Expected empty chart for empty distribution, got:\n%s", chart)
	}
}

func TestGenerateBurnupChart(t *testing.T) {
	cone := simulation.Cone{
		Start: 3,
		Bands: []simulation.ConeBand{
			{Level: 0.10, Values: []int{13, 16, 20, 20, 20, 20, 20, 20}},
			{Level: 0.50, Values: []int{15, 19, 20, 20, 20, 20, 20, 20}},
			{Level: 0.90, Values: []int{17, 20, 20, 20, 20, 20, 20, 20}},
		},
	}

	chart := GenerateBurnupChart(cone, 20)
	if !strings.Contains(chart, "Risk Horizon (from period 3)") {
		t.Errorf("Expected title with start period, got:\n%s", chart)
	}
	// Lower band lands at period 3 of the cone, so the span truncates at 5
	// future periods: labels 4..8.
	if !strings.Contains(chart, `x-axis ["4", "5", "6", "7", "8"]`) {
		t.Errorf("Expected truncated x-axis, got:\n%s", chart)
	}
	// Scope line plus one line per band.
	if got := strings.Count(chart, "line ["); got != 4 {
		t.Errorf("Expected 4 line series, got %d:\n%s", got, chart)
	}
}

func TestGenerateBurnupChart_Empty(t *testing.T) {
	if chart := GenerateBurnupChart(simulation.Cone{}, 20); chart != "" {
		t.Errorf("Expected empty chart for empty cone, got:\n%s", chart)
	}
}
