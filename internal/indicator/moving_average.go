package indicator

// MovingAverage computes the simple arithmetic mean over a trailing
// window of n days. Output index i covers the window ending at input
// index i+n-1, so the result has len(prices)-n+1 values starting at
// calendar day n-1.
func MovingAverage(prices []float64, n int) (Series, error) {
	if n < 1 {
		return Series{}, ErrInvalidWindow
	}
	if len(prices) == 0 {
		return Series{}, ErrEmptySeries
	}

	eff := effectiveWindow(n, len(prices))
	out := make([]float64, len(prices)-eff+1)
	for i := range out {
		var sum float64
		for k := 0; k < eff; k++ {
			sum += prices[i+k]
		}
		out[i] = sum / float64(eff)
	}

	return Series{Values: out, StartDay: eff - 1, Window: eff}, nil
}

// WeightedMovingAverage computes a weighted mean over a trailing window
// of n days. weights must have exactly n entries, ordered oldest first;
// they are normalized to sum to 1 before use. When the series is shorter
// than n, the oldest weights are dropped along with the missing history
// and the remainder renormalized.
func WeightedMovingAverage(prices []float64, n int, weights []float64) (Series, error) {
	if n < 1 {
		return Series{}, ErrInvalidWindow
	}
	if len(prices) == 0 {
		return Series{}, ErrEmptySeries
	}
	if len(weights) != n {
		return Series{}, ErrWeightLength
	}

	eff := effectiveWindow(n, len(prices))
	w := weights[n-eff:]

	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return Series{}, ErrWeightSum
	}
	normalized := make([]float64, eff)
	for i, v := range w {
		normalized[i] = v / sum
	}

	out := make([]float64, len(prices)-eff+1)
	for i := range out {
		var acc float64
		for k := 0; k < eff; k++ {
			acc += normalized[k] * prices[i+k]
		}
		out[i] = acc
	}

	return Series{Values: out, StartDay: eff - 1, Window: eff}, nil
}

func effectiveWindow(n, available int) int {
	if n > available {
		return available
	}
	return n
}
