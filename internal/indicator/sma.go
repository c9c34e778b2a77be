package indicator

// SMA calculates the Simple Moving Average.
// result[i] is the mean of prices[i-period+1..i]; earlier positions are Undefined.
func SMA(prices []float64, period int) []float64 {
	result := undefinedSeries(len(prices))
	if period <= 0 || len(prices) < period {
		return result
	}

	// Windows are summed from scratch so SMA and RollingStdDev share one mean.
	for i := period - 1; i < len(prices); i++ {
		result[i] = windowMean(prices, i, period)
	}

	return result
}

// windowMean is the mean of prices[end-window+1..end].
func windowMean(prices []float64, end, window int) float64 {
	var sum float64
	for j := end - window + 1; j <= end; j++ {
		sum += prices[j]
	}
	return sum / float64(window)
}

// EMA calculates the Exponential Moving Average with alpha = 2/(span+1).
// The recursion is seeded with the first price, so every position is defined.
func EMA(prices []float64, span int) []float64 {
	if len(prices) == 0 {
		return []float64{}
	}
	if span <= 0 {
		return undefinedSeries(len(prices))
	}

	result := make([]float64, len(prices))
	multiplier := 2.0 / float64(span+1)

	ema := prices[0]
	result[0] = ema
	for i := 1; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		result[i] = ema
	}

	return result
}
