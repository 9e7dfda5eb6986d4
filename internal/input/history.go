package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParsePulse parses a comma-separated throughput history ("6,5,4,6,3").
// Blank entries are skipped; anything else non-numeric is an error so a typo
// cannot silently shrink the sample.
func ParsePulse(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid throughput value %q: %w", part, err)
		}
		counts = append(counts, v)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no throughput values in %q", s)
	}
	return counts, nil
}

// LoadPulseFile reads a single-column CSV (or plain line-per-value) file and
// extracts the first column as integers. An optional header row and
// non-numeric rows are skipped, mirroring how uploaded spreadsheets are
// usually shaped. A file that yields no numeric rows at all is an error: the
// engine must never simulate against an empty history.
func LoadPulseFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open throughput file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read throughput file %s: %w", path, err)
	}

	counts := make([]int, 0, len(records))
	skipped := 0
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		cell := strings.TrimSpace(record[0])
		v, err := strconv.Atoi(cell)
		if err != nil {
			skipped++
			continue
		}
		counts = append(counts, v)
	}
	if skipped > 0 {
		log.Debug().Str("file", path).Int("skipped", skipped).Msg("Skipped non-numeric rows in throughput file")
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("throughput file %s contains no numeric rows", path)
	}
	return counts, nil
}

// CombinePool merges the historical pulse with the running project's actuals
// into one sampling pool. The risk horizon resamples the project's own
// observed periods alongside the baseline, so recent reality weighs into
// every draw.
func CombinePool(pulse, actuals []int) []int {
	pool := make([]int, 0, len(pulse)+len(actuals))
	pool = append(pool, pulse...)
	pool = append(pool, actuals...)
	return pool
}

// SumActuals collapses a per-period actuals sequence into the progress
// snapshot fields: items completed so far and periods elapsed.
func SumActuals(actuals []int) (completed, elapsed int) {
	for _, a := range actuals {
		completed += a
	}
	return completed, len(actuals)
}
