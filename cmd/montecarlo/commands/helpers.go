package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Theovanstratum1953/montecarlo/internal/report"
)

// parseLevels turns "50,85,95" into fractional confidence levels.
func parseLevels(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	levels := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid confidence level %q: %w", part, err)
		}
		if v > 1 {
			v /= 100
		}
		if v <= 0 || v >= 1 {
			return nil, fmt.Errorf("confidence level %q outside (0,100)", part)
		}
		levels = append(levels, v)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no confidence levels in %q", s)
	}
	return levels, nil
}

func emitReport(markdown, path string, open bool) error {
	if path == "" {
		return nil
	}
	if open {
		return report.SaveAndOpen(path, markdown)
	}
	return report.Save(path, markdown)
}
