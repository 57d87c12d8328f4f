/**
 * CONTEXT:   Aggregate statistics over a vector of per-day durations
 * INPUT:     A slice of second counts, one per day
 * OUTPUT:    Mean/median/percentiles/IQR/MAD/variance/stddev, all in seconds
 * BUSINESS:  The data-query CLI (C12) surfaces these for spotting outlier days
 * CHANGE:    Nearest-rank percentiles, average-of-middle-two median
 * RISK:      Medium - percentile index math is the easiest place to be off-by-one
 */

package query

import (
	"math"
	"sort"
)

// Statistics is the full aggregate summary over a duration vector. An empty
// input vector yields a zeroed Statistics value, never an error.
type Statistics struct {
	Count    int
	Mean     float64
	Median   float64
	P25      float64
	P75      float64
	P90      float64
	P95      float64
	Min      int64
	Max      int64
	IQR      float64
	MAD      float64
	Variance float64
	StdDev   float64
}

// ComputeStatistics sorts a copy of durations and derives every summary
// field. Input order is never mutated.
func ComputeStatistics(durations []int64) Statistics {
	n := len(durations)
	if n == 0 {
		return Statistics{}
	}

	sorted := make([]int64, n)
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	stats := Statistics{
		Count: n,
		Min:   sorted[0],
		Max:   sorted[n-1],
	}

	var sum int64
	for _, d := range sorted {
		sum += d
	}
	stats.Mean = float64(sum) / float64(n)

	stats.Median = medianOf(sorted)
	stats.P25 = nearestRankPercentile(sorted, 25)
	stats.P75 = nearestRankPercentile(sorted, 75)
	stats.P90 = nearestRankPercentile(sorted, 90)
	stats.P95 = nearestRankPercentile(sorted, 95)
	stats.IQR = stats.P75 - stats.P25

	stats.Variance = sampleVariance(sorted, stats.Mean)
	stats.StdDev = math.Sqrt(stats.Variance)
	stats.MAD = medianAbsoluteDeviation(sorted, stats.Median)

	return stats
}

// medianOf returns the midpoint value of a sorted slice: the middle element
// for odd lengths, the average of the two middle elements for even lengths.
func medianOf(sorted []int64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}

// nearestRankPercentile implements the nearest-rank definition: index =
// ceil(p/100 * n), 1-based, clamped to [1, n].
func nearestRankPercentile(sorted []int64, p float64) float64 {
	n := len(sorted)
	rank := int(math.Ceil(p / 100 * float64(n)))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return float64(sorted[rank-1])
}

// sampleVariance uses the n-1 (Bessel-corrected) denominator; a single-point
// sample has undefined sample variance and returns 0.
func sampleVariance(sorted []int64, mean float64) float64 {
	n := len(sorted)
	if n < 2 {
		return 0
	}
	var sumSq float64
	for _, d := range sorted {
		diff := float64(d) - mean
		sumSq += diff * diff
	}
	return sumSq / float64(n-1)
}

// medianAbsoluteDeviation is the median of |x - median(x)|.
func medianAbsoluteDeviation(sorted []int64, median float64) float64 {
	n := len(sorted)
	deviations := make([]float64, n)
	for i, d := range sorted {
		deviations[i] = math.Abs(float64(d) - median)
	}
	sort.Float64s(deviations)
	if n%2 == 1 {
		return deviations[n/2]
	}
	return (deviations[n/2-1] + deviations[n/2]) / 2
}
