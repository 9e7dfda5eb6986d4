package commands

import "testing"

func TestParseLevels_Percentages(t *testing.T) {
	levels, err := parseLevels("50, 85,95")
	if err != nil {
		t.Fatalf("parseLevels: %v", err)
	}
	want := []float64{0.50, 0.85, 0.95}
	if len(levels) != len(want) {
		t.Fatalf("Expected %d levels, got %d", len(want), len(levels))
	}
	for i, w := range want {
		if levels[i] != w {
			t.Errorf("Level %d: expected %.2f, got %.2f", i, w, levels[i])
		}
	}
}

func TestParseLevels_Fractions(t *testing.T) {
	levels, err := parseLevels("0.1,0.5,0.9")
	if err != nil {
		t.Fatalf("parseLevels: %v", err)
	}
	if levels[0] != 0.1 || levels[2] != 0.9 {
		t.Errorf("Unexpected levels: %v", levels)
	}
}

func TestParseLevels_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "0", "100", "150"} {
		if _, err := parseLevels(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}
