package simulation

import (
	"math"
	"sort"
)

// aggregateOutcomes turns raw per-trial completion periods into the empirical
// distribution and the percentile band. Unresolved trials participate in the
// CDF denominator (they are the tail mass beyond the horizon) but are never
// mapped to a numeric period, so they cannot bias the markers downward.
func aggregateOutcomes(periods []int, cfg Config) (Distribution, Band) {
	resolved := make([]int, 0, len(periods))
	unresolved := 0
	for _, p := range periods {
		if p == Unresolved {
			unresolved++
			continue
		}
		resolved = append(resolved, p)
	}
	sort.Ints(resolved)

	total := len(periods)
	dist := Distribution{
		Resolved:        len(resolved),
		UnresolvedCount: unresolved,
		UnresolvedShare: float64(unresolved) / float64(total),
		Buckets:         bucketize(resolved, total, cfg.BucketWidth),
		CDF:             buildCDF(resolved, total),
	}

	band := make(Band, 0, len(cfg.ForecastLevels))
	for _, level := range cfg.ForecastLevels {
		band = append(band, percentileOf(resolved, total, level))
	}
	return dist, band
}

// percentileOf returns the smallest period t with CDF(t) >= level. With
// duplicate outcomes the rank index lands on the first bucket whose
// cumulative share meets the level, which is exactly the smallest such t; a
// naive binary search over the CDF steps can pick a later duplicate. When the
// rank falls past the resolved outcomes the requested confidence is not
// attainable within the horizon.
func percentileOf(sorted []int, total int, level float64) Percentile {
	rank := int(math.Ceil(level*float64(total))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		return Percentile{Level: level, Resolved: false}
	}
	return Percentile{Level: level, Periods: sorted[rank], Resolved: true}
}

// buildCDF emits one step per distinct resolved outcome. The final step
// equals 1 minus the unresolved share.
func buildCDF(sorted []int, total int) []CDFPoint {
	if len(sorted) == 0 {
		return nil
	}
	points := make([]CDFPoint, 0)
	for i := 0; i < len(sorted); i++ {
		if i+1 < len(sorted) && sorted[i+1] == sorted[i] {
			continue
		}
		points = append(points, CDFPoint{
			Periods:     sorted[i],
			Probability: float64(i+1) / float64(total),
		})
	}
	return points
}

// bucketize partitions the observed outcome range into contiguous buckets of
// the configured width. Empty buckets inside the range are kept so the series
// charts without gaps; probabilities are relative to the full trial count so
// they sum to 1-unresolvedShare.
func bucketize(sorted []int, total, width int) []Bucket {
	if len(sorted) == 0 {
		return nil
	}
	minV, maxV := sorted[0], sorted[len(sorted)-1]
	count := (maxV-minV)/width + 1
	buckets := make([]Bucket, count)
	for i := range buckets {
		start := minV + i*width
		buckets[i] = Bucket{Start: start, End: start + width - 1}
	}
	for _, v := range sorted {
		buckets[(v-minV)/width].Count++
	}
	for i := range buckets {
		buckets[i].Probability = float64(buckets[i].Count) / float64(total)
	}
	return buckets
}

// aggregateCone extracts the requested percentiles of cumulative progress
// independently at every future period. Monotonicity of each band follows
// from every trajectory being monotone: a fixed order statistic of
// pointwise-monotone sequences is itself monotone.
func aggregateCone(trajectories [][]int, levels []float64, start int) Cone {
	cone := Cone{Start: start}
	if len(trajectories) == 0 || len(trajectories[0]) == 0 {
		return cone
	}
	horizon := len(trajectories[0])

	sortedLevels := append([]float64(nil), levels...)
	sort.Float64s(sortedLevels)
	for _, level := range sortedLevels {
		cone.Bands = append(cone.Bands, ConeBand{Level: level, Values: make([]int, horizon)})
	}

	column := make([]int, len(trajectories))
	for t := 0; t < horizon; t++ {
		for i, traj := range trajectories {
			column[i] = traj[t]
		}
		sort.Ints(column)
		for b, level := range sortedLevels {
			rank := int(math.Ceil(level*float64(len(column)))) - 1
			if rank < 0 {
				rank = 0
			}
			cone.Bands[b].Values[t] = column[rank]
		}
	}
	return cone
}
