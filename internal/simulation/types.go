package simulation

import (
	"errors"
	"fmt"
)

// Unresolved marks a trial that did not reach its target scope before the
// horizon cap. It is kept out of every percentile and bucket computation and
// reported as its own probability mass.
const Unresolved = -1

// Validation errors, detected before any trial runs.
var (
	ErrEmptyHistory    = errors.New("throughput history is empty")
	ErrNegativeCount   = errors.New("throughput history contains a negative count")
	ErrInvalidScope    = errors.New("invalid scope range")
	ErrInvalidProgress = errors.New("invalid progress snapshot")
	ErrInvalidConfig   = errors.New("invalid simulation config")
)

// Status classifies an aggregated result.
type Status string

const (
	// StatusOK means the forecast is based on a healthy resolved trial set.
	StatusOK Status = "ok"
	// StatusDegenerate means the inputs were valid but trivially complete
	// (zero remaining scope), so the result is an immediate completion.
	StatusDegenerate Status = "degenerate"
	// StatusIndefinite means the history cannot support the requested scope
	// within the horizon cap; most or all trials ended unresolved.
	StatusIndefinite Status = "indefinite"
)

// History is an ordered record of observed per-period completion counts.
// It is the sole source of randomness for the simulation: every draw is a
// uniform pick, with replacement, from Counts.
type History struct {
	Counts []int
}

// NewHistory validates and snapshots a throughput record. The slice is copied
// so the engine never observes caller mutations mid-run.
func NewHistory(counts []int) (History, error) {
	if len(counts) == 0 {
		return History{}, ErrEmptyHistory
	}
	for i, c := range counts {
		if c < 0 {
			return History{}, fmt.Errorf("%w: period %d has count %d", ErrNegativeCount, i+1, c)
		}
	}
	snapshot := make([]int, len(counts))
	copy(snapshot, counts)
	return History{Counts: snapshot}, nil
}

// Periods returns the number of observed periods.
func (h History) Periods() int { return len(h.Counts) }

// AllZero reports whether the history contains no delivery at all.
func (h History) AllZero() bool {
	for _, c := range h.Counts {
		if c > 0 {
			return false
		}
	}
	return true
}

// Mean returns the average throughput per period.
func (h History) Mean() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	sum := 0
	for _, c := range h.Counts {
		sum += c
	}
	return float64(sum) / float64(len(h.Counts))
}

// ScopeRange models scope uncertainty for a delivery forecast: each trial
// draws its own target uniformly from [Min, Max].
type ScopeRange struct {
	Min int `json:"min_items"`
	Max int `json:"max_items"`
}

// Validate checks the range invariants.
func (r ScopeRange) Validate() error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%w: negative item count (%d-%d)", ErrInvalidScope, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidScope, r.Min, r.Max)
	}
	return nil
}

// Fixed reports whether the range collapses to a single scope value.
func (r ScopeRange) Fixed() bool { return r.Min == r.Max }

// ProgressSnapshot captures the state of a running project for risk-horizon
// tracking. Remaining scope is always derived, never stored, so it cannot
// drift out of sync with the other fields.
type ProgressSnapshot struct {
	TotalScope     int `json:"total_scope"`
	Completed      int `json:"completed"`
	PeriodsElapsed int `json:"periods_elapsed"`
}

// Validate checks the snapshot invariants.
func (p ProgressSnapshot) Validate() error {
	if p.TotalScope < 0 || p.Completed < 0 || p.PeriodsElapsed < 0 {
		return fmt.Errorf("%w: negative field", ErrInvalidProgress)
	}
	if p.Completed > p.TotalScope {
		return fmt.Errorf("%w: completed %d exceeds total scope %d", ErrInvalidProgress, p.Completed, p.TotalScope)
	}
	return nil
}

// Remaining returns the items still to deliver.
func (p ProgressSnapshot) Remaining() int { return p.TotalScope - p.Completed }

// Config tunes the simulation. Trials trades compute for smoother curves;
// MaxHorizon is the hard per-trial iteration bound that guarantees
// termination even for all-zero histories.
type Config struct {
	Trials         int
	MaxHorizon     int
	BucketWidth    int
	Workers        int // 0 means one worker per CPU
	ForecastLevels []float64
	ConeLevels     []float64
}

// DefaultConfig mirrors the defaults of the interactive suite: 10000 trials,
// P50/85/95 forecast markers and a 10/50/90 cone.
func DefaultConfig() Config {
	return Config{
		Trials:         10000,
		MaxHorizon:     520,
		BucketWidth:    1,
		ForecastLevels: []float64{0.50, 0.85, 0.95},
		ConeLevels:     []float64{0.10, 0.50, 0.90},
	}
}

func (c Config) validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be >= 1, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.MaxHorizon < 1 {
		return fmt.Errorf("%w: max horizon must be >= 1, got %d", ErrInvalidConfig, c.MaxHorizon)
	}
	if c.BucketWidth < 1 {
		return fmt.Errorf("%w: bucket width must be >= 1, got %d", ErrInvalidConfig, c.BucketWidth)
	}
	for _, lv := range append(append([]float64{}, c.ForecastLevels...), c.ConeLevels...) {
		if lv <= 0 || lv >= 1 {
			return fmt.Errorf("%w: percentile level %.3f outside (0,1)", ErrInvalidConfig, lv)
		}
	}
	return nil
}

// Percentile is one confidence marker extracted from the trial distribution.
// Periods is the smallest period count whose cumulative probability reaches
// Level. Resolved is false when the marker falls into the unresolved tail,
// i.e. the requested confidence is not attainable within the horizon.
type Percentile struct {
	Level    float64 `json:"level"`
	Periods  int     `json:"periods"`
	Resolved bool    `json:"resolved"`
}

// Band is an ordered set of percentile markers (ascending confidence).
type Band []Percentile

// At returns the marker for the given confidence level.
func (b Band) At(level float64) (Percentile, bool) {
	for _, p := range b {
		if p.Level == level {
			return p, true
		}
	}
	return Percentile{}, false
}

// Bucket is one display bucket of the completion distribution: trials whose
// outcome fell in [Start, End] inclusive.
type Bucket struct {
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
}

// CDFPoint is one step of the empirical cumulative distribution.
type CDFPoint struct {
	Periods     int     `json:"periods"`
	Probability float64 `json:"probability"`
}

// Distribution is the histogram-ready completion distribution. Bucket
// probabilities sum to 1-UnresolvedShare; unresolved trials are reported as
// their own explicit mass so a capped forecast can never overstate
// confidence.
type Distribution struct {
	Buckets         []Bucket   `json:"buckets"`
	CDF             []CDFPoint `json:"cdf"`
	Resolved        int        `json:"resolved_trials"`
	UnresolvedCount int        `json:"unresolved_trials"`
	UnresolvedShare float64    `json:"unresolved_share"`
}

// ConeBand is one percentile trajectory of the projection cone: Values[i] is
// the percentile of simulated cumulative progress at future period i+1.
type ConeBand struct {
	Level  float64 `json:"level"`
	Values []int   `json:"values"`
}

// Cone is the per-period envelope of simulated progress trajectories.
// Bands are ordered by ascending level; every band is monotone
// non-decreasing in t because progress only accumulates. The bands are
// independent per-period percentiles, not any single trial's path: the
// median line answers "what is plausible progress at period t", it does not
// trace one coherent future.
type Cone struct {
	Start int        `json:"start_period"`
	Bands []ConeBand `json:"bands"`
}

// Lower returns the lowest-level band, or nil for an empty cone.
func (c Cone) Lower() []int {
	if len(c.Bands) == 0 {
		return nil
	}
	return c.Bands[0].Values
}

// Upper returns the highest-level band, or nil for an empty cone.
func (c Cone) Upper() []int {
	if len(c.Bands) == 0 {
		return nil
	}
	return c.Bands[len(c.Bands)-1].Values
}

// ForecastResult is the aggregated outcome of a delivery forecast run.
type ForecastResult struct {
	Scope        ScopeRange   `json:"scope"`
	Trials       int          `json:"trials"`
	Status       Status       `json:"status"`
	Distribution Distribution `json:"distribution"`
	Percentiles  Band         `json:"percentiles"`
	Warnings     []string     `json:"warnings,omitempty"`
	Insights     []string     `json:"insights,omitempty"`
}

// HorizonResult is the aggregated outcome of a risk-horizon run. The
// distribution and percentiles are over future periods counted from the
// snapshot, so a completion period of 3 means "3 periods after
// PeriodsElapsed".
type HorizonResult struct {
	Snapshot     ProgressSnapshot `json:"snapshot"`
	Trials       int              `json:"trials"`
	Horizon      int              `json:"horizon"`
	Status       Status           `json:"status"`
	Distribution Distribution     `json:"distribution"`
	Percentiles  Band             `json:"percentiles"`
	Cone         Cone             `json:"cone"`
	Warnings     []string         `json:"warnings,omitempty"`
	Insights     []string         `json:"insights,omitempty"`
}
