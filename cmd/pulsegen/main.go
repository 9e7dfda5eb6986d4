package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// pulsegen writes synthetic throughput histories for trying out the suite
// without real project data. Each scenario shapes the per-period counts
// differently so forecasts show distinct spread.
func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	periods := flag.Int("periods", 52, "Number of historical periods to generate")
	out := flag.String("out", "pulse.csv", "Output CSV path")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	counts, err := generate(*scenario, *periods, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := save(*out, counts); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save pulse data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated scenario '%s' (%d periods) to %s\n", *scenario, *periods, *out)
}

func generate(scenario string, periods int, rng *rand.Rand) ([]int, error) {
	counts := make([]int, periods)
	switch scenario {
	case "mild":
		// steady team: uniform 3..7 items per period
		for i := range counts {
			counts[i] = 3 + rng.Intn(5)
		}
	case "chaos":
		// bursty team: mostly 0-2, occasional fat-tail spike
		for i := range counts {
			if rng.Float64() < 0.1 {
				counts[i] = 8 + rng.Intn(8)
			} else {
				counts[i] = rng.Intn(3)
			}
		}
	case "drift":
		// process shift: slow first half, faster second half
		for i := range counts {
			base := 2
			if i >= periods/2 {
				base = 6
			}
			counts[i] = base + rng.Intn(3)
		}
	default:
		return nil, fmt.Errorf("unknown scenario: %s (available: mild, chaos, drift)", scenario)
	}
	return counts, nil
}

func save(path string, counts []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"throughput"}); err != nil {
		return err
	}
	for _, c := range counts {
		if err := w.Write([]string{fmt.Sprintf("%d", c)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
