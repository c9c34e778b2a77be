package indicator

import "math"

// Bands holds the three Bollinger series
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// RollingStdDev calculates the sample standard deviation (n-1 denominator)
// over a trailing window. Positions before the window fills are Undefined.
func RollingStdDev(prices []float64, window int) []float64 {
	result := undefinedSeries(len(prices))
	if window <= 1 || len(prices) < window {
		return result
	}

	for i := window - 1; i < len(prices); i++ {
		mean := windowMean(prices, i, window)

		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := prices[j] - mean
			sq += d * d
		}
		result[i] = math.Sqrt(sq / float64(window-1))
	}

	return result
}

// Bollinger calculates Bollinger Bands: Middle is SMA(window) and the outer
// bands sit numStd rolling standard deviations away from it.
func Bollinger(prices []float64, window int, numStd float64) Bands {
	middle := SMA(prices, window)
	std := RollingStdDev(prices, window)

	upper := make([]float64, len(prices))
	lower := make([]float64, len(prices))
	for i := range prices {
		if !IsDefined(middle[i]) || !IsDefined(std[i]) {
			upper[i] = Undefined
			lower[i] = Undefined
			continue
		}
		upper[i] = middle[i] + numStd*std[i]
		lower[i] = middle[i] - numStd*std[i]
	}

	return Bands{Upper: upper, Middle: middle, Lower: lower}
}
