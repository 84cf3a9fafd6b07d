// Package random provides the two sampling primitives used by the feed
// selector: a uniform integer draw and a logarithmically skewed draw that
// concentrates probability mass toward the low end of the range.
package random

import (
	"errors"
	"math"
	"math/rand/v2"
)

// ErrInvalidRange indicates an empty or invalid sampling range. Hitting it
// means a caller computed a bad range, not bad user input.
var ErrInvalidRange = errors.New("random: invalid range")

// Int returns a uniformly distributed integer in [min, max] inclusive.
func Int(min, max int) (int, error) {
	if min > max {
		return 0, ErrInvalidRange
	}
	return min + rand.IntN(max-min+1), nil
}

// Logarithmic returns an integer in [min, max] by sampling uniformly in
// log-space and exponentiating back. The distribution is biased toward min,
// which the selector uses to favor the front of a list ordered from least-
// to most-engaged. min must be at least 1.
func Logarithmic(min, max int) (int, error) {
	if min < 1 || min > max {
		return 0, ErrInvalidRange
	}
	logMin := math.Log(float64(min))
	logMax := math.Log(float64(max))
	logRand := logMin + (logMax-logMin)*rand.Float64()
	n := int(math.Round(math.Exp(logRand)))
	// Rounding at the edges can land one outside the range.
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n, nil
}
