package random

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
	}{
		{name: "single value", min: 5, max: 5},
		{name: "zero based", min: 0, max: 9},
		{name: "negative range", min: -10, max: -1},
		{name: "wide range", min: 1, max: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				n, err := Int(tt.min, tt.max)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, n, tt.min)
				assert.LessOrEqual(t, n, tt.max)
			}
		})
	}
}

func TestIntInvalidRange(t *testing.T) {
	_, err := Int(10, 9)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestLogarithmic(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
	}{
		{name: "single value", min: 1, max: 1},
		{name: "small range", min: 1, max: 3},
		{name: "wide range", min: 1, max: 1000},
		{name: "shifted range", min: 10, max: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				n, err := Logarithmic(tt.min, tt.max)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, n, tt.min)
				assert.LessOrEqual(t, n, tt.max)
			}
		})
	}
}

func TestLogarithmicInvalidRange(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
	}{
		{name: "min below one", min: 0, max: 10},
		{name: "negative min", min: -5, max: 10},
		{name: "min above max", min: 10, max: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Logarithmic(tt.min, tt.max)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

// The logarithmic draw must be strictly biased toward the bottom of the
// range compared to a uniform draw.
func TestLogarithmicBiasedTowardMin(t *testing.T) {
	const trials = 10000

	logSamples := make([]int, trials)
	uniformSamples := make([]int, trials)
	for i := 0; i < trials; i++ {
		n, err := Logarithmic(1, 1000)
		require.NoError(t, err)
		logSamples[i] = n

		n, err = Int(1, 1000)
		require.NoError(t, err)
		uniformSamples[i] = n
	}

	assert.Less(t, median(logSamples), median(uniformSamples))
}

func median(samples []int) int {
	sorted := make([]int, len(samples))
	copy(sorted, samples)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}
