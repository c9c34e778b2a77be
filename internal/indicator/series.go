// Package indicator computes rolling and exponential statistics over a
// numeric series. Every function returns a new slice aligned index-for-index
// with its input; positions without enough lookback hold the Undefined
// sentinel.
package indicator

import "math"

// Undefined marks a position without enough trailing data.
var Undefined = math.NaN()

// IsDefined reports whether v holds a computed value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = Undefined
	}
	return out
}
