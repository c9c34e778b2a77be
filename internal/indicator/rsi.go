package indicator

// RSI calculates the Relative Strength Index from simple averages of gains
// and losses over the trailing `periods` bar-to-bar deltas.
// The first defined position is index `periods`. A window without losses
// saturates at 100.
func RSI(prices []float64, periods int) []float64 {
	result := undefinedSeries(len(prices))
	if periods <= 0 || len(prices) <= periods {
		return result
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// Sums are recomputed per window so a loss-free window is exactly zero.
	for i := periods; i < len(prices); i++ {
		var gainSum, lossSum float64
		for j := i - periods + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}
		if lossSum == 0 {
			result[i] = 100
			continue
		}
		rs := (gainSum / float64(periods)) / (lossSum / float64(periods))
		result[i] = 100 - 100/(1+rs)
	}

	return result
}
