package util

import "math"

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values, 0 for fewer
// than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// MaxDeviationFromUniform measures how far a discrete distribution strays
// from an even split over its buckets, normalized to [0,1]. counts holds
// occurrences per bucket; buckets with zero count still participate.
func MaxDeviationFromUniform(counts []int) float64 {
	k := len(counts)
	if k < 2 {
		return 0
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	uniform := 1.0 / float64(k)
	var max float64
	for _, c := range counts {
		d := math.Abs(float64(c)/float64(total) - uniform)
		if d > max {
			max = d
		}
	}
	// The largest possible deviation is 1 - 1/k, when one bucket holds everything.
	return max / (1 - uniform)
}
