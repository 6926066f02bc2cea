// Package analytics holds the derived computations of the dashboard. Each
// engine lives in its own subpackage; this package has the shared numeric helpers.
package analytics

import "math"

// RoundFloat rounds v to the given number of decimal places.
func RoundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
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

// Head returns at most the first n values.
func Head(values []float64, n int) []float64 {
	if n > len(values) {
		n = len(values)
	}
	if n < 0 {
		n = 0
	}
	return values[:n]
}

// Tail returns at most the last n values.
func Tail(values []float64, n int) []float64 {
	if n > len(values) {
		n = len(values)
	}
	if n < 0 {
		n = 0
	}
	return values[len(values)-n:]
}
