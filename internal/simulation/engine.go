package simulation

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// WarnIndefinite is attached when no trial reached its target scope within
// the horizon cap.
const WarnIndefinite = "No usable historical throughput for the requested scope. The forecast is theoretically infinite based on current data."

// WarnSingleTrial is attached when the simulation ran with a single trial.
const WarnSingleTrial = "Single-trial simulation produces high-variance, non-representative output. Increase trials for a stable forecast."

// Engine performs the Monte-Carlo simulation. Every trial is a pure function
// of the immutable history snapshot, the scope parameters and a private
// random stream, so trials run in parallel without any shared mutable state.
type Engine struct {
	history History
	cfg     Config
	seed    int64
	seeded  bool
}

// NewEngine creates an engine over a validated history snapshot.
func NewEngine(h History, cfg Config) *Engine {
	return &Engine{history: h, cfg: cfg}
}

// SetSeed pins the randomness for reproducible runs (golden tests). A seeded
// run is deterministic for a fixed Workers setting.
func (e *Engine) SetSeed(seed int64) {
	e.seed = seed
	e.seeded = true
}

// RunDeliveryForecast simulates completing a scope drawn from the given range
// against the throughput history and aggregates the trials into a completion
// distribution with percentile markers.
func (e *Engine) RunDeliveryForecast(scope ScopeRange) (*ForecastResult, error) {
	if err := e.validateInputs(); err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	periods := make([]int, e.cfg.Trials)
	e.runParallel(e.cfg.Trials, func(rng *rand.Rand, start, end int) {
		for i := start; i < end; i++ {
			periods[i] = e.forecastTrial(rng, scope)
		}
	})

	dist, band := aggregateOutcomes(periods, e.cfg)

	res := &ForecastResult{
		Scope:        scope,
		Trials:       e.cfg.Trials,
		Status:       statusOf(dist, scope.Max == 0),
		Distribution: dist,
		Percentiles:  band,
	}
	e.annotate(&res.Warnings, &res.Insights, dist, res.Status)
	if res.Status == StatusDegenerate {
		res.Insights = append(res.Insights, "Scope is already complete. Every trial finishes in zero periods.")
	}
	return res, nil
}

// RunRiskHorizon simulates the remaining scope of a running project and
// records the full cumulative trajectory of every trial. Horizon is both the
// cone width and the termination cap.
func (e *Engine) RunRiskHorizon(snap ProgressSnapshot) (*HorizonResult, error) {
	if err := e.validateInputs(); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	horizon := e.cfg.MaxHorizon
	completions := make([]int, e.cfg.Trials)
	trajectories := make([][]int, e.cfg.Trials)
	e.runParallel(e.cfg.Trials, func(rng *rand.Rand, start, end int) {
		for i := start; i < end; i++ {
			traj := make([]int, horizon)
			completions[i] = e.horizonTrial(rng, snap, traj)
			trajectories[i] = traj
		}
	})

	dist, band := aggregateOutcomes(completions, e.cfg)
	cone := aggregateCone(trajectories, e.cfg.ConeLevels, snap.PeriodsElapsed)

	res := &HorizonResult{
		Snapshot:     snap,
		Trials:       e.cfg.Trials,
		Horizon:      horizon,
		Status:       statusOf(dist, snap.Remaining() == 0),
		Distribution: dist,
		Percentiles:  band,
		Cone:         cone,
	}
	e.annotate(&res.Warnings, &res.Insights, dist, res.Status)
	if res.Status == StatusDegenerate {
		res.Insights = append(res.Insights, fmt.Sprintf("All %d items are already delivered. The cone has zero width at period %d.", snap.TotalScope, snap.PeriodsElapsed))
	}
	return res, nil
}

// forecastTrial plays out one possible future: draw a target scope, then
// resample history with replacement until the target is met or the horizon
// cap converts the trial into an unresolved outcome.
func (e *Engine) forecastTrial(rng *rand.Rand, scope ScopeRange) int {
	target := scope.Min
	if !scope.Fixed() {
		target = scope.Min + rng.Intn(scope.Max-scope.Min+1)
	}
	if target == 0 {
		return 0
	}

	accumulated := 0
	for periods := 1; periods <= e.cfg.MaxHorizon; periods++ {
		accumulated += e.history.Counts[rng.Intn(len(e.history.Counts))]
		if accumulated >= target {
			return periods
		}
	}
	return Unresolved
}

// horizonTrial is the same resampling loop started from the snapshot. It
// fills traj with the cumulative progress at every future period, clamped at
// total scope and padded flat after completion so all trajectories have equal
// length for aggregation. Returns the completion period (0 when the snapshot
// is already complete, Unresolved when the cap is hit first).
func (e *Engine) horizonTrial(rng *rand.Rand, snap ProgressSnapshot, traj []int) int {
	cumulative := snap.Completed
	completion := Unresolved
	if cumulative >= snap.TotalScope {
		completion = 0
	}

	for t := 0; t < len(traj); t++ {
		if cumulative < snap.TotalScope {
			cumulative += e.history.Counts[rng.Intn(len(e.history.Counts))]
			if cumulative >= snap.TotalScope {
				cumulative = snap.TotalScope
				if completion == Unresolved {
					completion = t + 1
				}
			}
		}
		traj[t] = cumulative
	}
	return completion
}

func (e *Engine) validateInputs() error {
	if len(e.history.Counts) == 0 {
		return ErrEmptyHistory
	}
	return e.cfg.validate()
}

// runParallel executes trials across a bounded worker pool. Each worker owns
// a private rand.Rand seeded from the master seed, and writes only its own
// index range, so no synchronization is needed beyond the final Wait.
func (e *Engine) runParallel(trials int, run func(rng *rand.Rand, start, end int)) {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > trials {
		workers = trials
	}

	master := e.seed
	if !e.seeded {
		master = time.Now().UnixNano()
	}
	seeder := rand.New(rand.NewSource(master))

	chunk := (trials + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > trials {
			end = trials
		}
		if start >= end {
			break
		}
		rng := rand.New(rand.NewSource(seeder.Int63()))
		g.Go(func() error {
			run(rng, start, end)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; Wait only fences completion
}

func statusOf(dist Distribution, degenerate bool) Status {
	switch {
	case degenerate:
		return StatusDegenerate
	case dist.UnresolvedShare >= 0.9:
		return StatusIndefinite
	default:
		return StatusOK
	}
}

func (e *Engine) annotate(warnings, insights *[]string, dist Distribution, status Status) {
	if status == StatusIndefinite {
		*warnings = append(*warnings, WarnIndefinite)
	} else if dist.UnresolvedCount > 0 {
		*warnings = append(*warnings, fmt.Sprintf(
			"%d of %d trials did not reach the target scope within the %d-period horizon. Confidence above %.0f%% is not attainable with this history.",
			dist.UnresolvedCount, e.cfg.Trials, e.cfg.MaxHorizon, (1-dist.UnresolvedShare)*100))
	}
	if e.cfg.Trials == 1 {
		*warnings = append(*warnings, WarnSingleTrial)
	}
	*insights = append(*insights, fmt.Sprintf(
		"Baseline: %d periods of history, mean throughput %.1f items/period.",
		e.history.Periods(), e.history.Mean()))
	if e.history.AllZero() && status != StatusDegenerate {
		*insights = append(*insights, "The sampled history contains no delivered items at all.")
	}
}
