package input

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseScenario_Forecast(t *testing.T) {
	raw := []byte(`{
		"mode": "forecast",
		"throughput": [6, 5, 4, 6, 3],
		"scope_min": 12,
		"scope_max": 17,
		"trials": 5000
	}`)

	sc, err := ParseScenario(raw)
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if sc.Mode != "forecast" || sc.ScopeMin != 12 || sc.ScopeMax != 17 || sc.Trials != 5000 {
		t.Errorf("Unexpected scenario: %+v", sc)
	}
	if len(sc.Throughput) != 5 {
		t.Errorf("Expected 5 throughput values, got %d", len(sc.Throughput))
	}
}

func TestParseScenario_SchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown mode", `{"mode": "guess", "throughput": [1]}`},
		{"empty throughput", `{"mode": "forecast", "throughput": []}`},
		{"negative throughput", `{"mode": "forecast", "throughput": [3, -1]}`},
		{"missing throughput", `{"mode": "forecast"}`},
		{"zero trials", `{"mode": "forecast", "throughput": [1], "trials": 0}`},
		{"unknown field", `{"mode": "forecast", "throughput": [1], "scope": 10}`},
		{"not json", `{"mode": forecast}`},
	}

	for _, tc := range cases {
		if _, err := ParseScenario([]byte(tc.raw)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestParseScenario_ScopeOrdering(t *testing.T) {
	raw := []byte(`{"mode": "forecast", "throughput": [1], "scope_min": 10, "scope_max": 5}`)
	if _, err := ParseScenario(raw); err == nil {
		t.Error("Expected error for scope_max < scope_min")
	}
}

func TestLoadScenario_Horizon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	raw := `{
		"mode": "horizon",
		"throughput": [2, 5, 4, 6, 4, 3, 5],
		"actuals": [2, 5, 4],
		"total_scope": 100,
		"horizon": 30
	}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.TotalScope != 100 || sc.Horizon != 30 || len(sc.Actuals) != 3 {
		t.Errorf("Unexpected scenario: %+v", sc)
	}
}
