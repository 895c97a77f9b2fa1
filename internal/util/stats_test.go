package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{2}))
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	// Population deviation of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Equal(t, 0.0, StdDev([]float64{3, 3, 3}))
}

func TestMaxDeviationFromUniform(t *testing.T) {
	// Fewer than two buckets carry no distribution to measure.
	assert.Equal(t, 0.0, MaxDeviationFromUniform(nil))
	assert.Equal(t, 0.0, MaxDeviationFromUniform([]int{7}))

	// Perfectly even split.
	assert.InDelta(t, 0.0, MaxDeviationFromUniform([]int{5, 5}), 1e-9)

	// Everything in one of two buckets: the worst case normalizes to 1.
	assert.InDelta(t, 1.0, MaxDeviationFromUniform([]int{10, 0}), 1e-9)

	// 15:1 over two buckets: |15/16 - 1/2| / (1 - 1/2) = 0.875.
	assert.InDelta(t, 0.875, MaxDeviationFromUniform([]int{15, 1}), 1e-9)

	// Zero totals measure as uniform.
	assert.Equal(t, 0.0, MaxDeviationFromUniform([]int{0, 0, 0}))
}
