package indicator

import (
	"fmt"
	"math"
	"strings"
)

// Oscillator selects one of the supported momentum oscillators. Strategies
// resolve it once at construction instead of comparing strings per call.
type Oscillator int

const (
	OscillatorStochastic Oscillator = iota
	OscillatorRSI
)

func (o Oscillator) String() string {
	switch o {
	case OscillatorStochastic:
		return "stochastic"
	case OscillatorRSI:
		return "rsi"
	default:
		return fmt.Sprintf("oscillator(%d)", int(o))
	}
}

func ParseOscillator(s string) (Oscillator, error) {
	switch strings.ToLower(s) {
	case "stochastic":
		return OscillatorStochastic, nil
	case "rsi":
		return OscillatorRSI, nil
	default:
		return 0, fmt.Errorf("indicator: unknown oscillator %q", s)
	}
}

// Compute dispatches to the selected oscillator.
func (o Oscillator) Compute(prices []float64, n int) (Series, error) {
	if o == OscillatorRSI {
		return RSI(prices, n)
	}
	return Stochastic(prices, n)
}

// Stochastic computes the stochastic oscillator
// (close - low) / (high - low) over a trailing n-day window including
// the current day. Values lie in [0, 1]. A flat window yields 0 when the
// numerator is also 0 and 1 otherwise; a window containing the NaN price
// sentinel yields NaN. Alignment matches MovingAverage.
func Stochastic(prices []float64, n int) (Series, error) {
	if n < 1 {
		return Series{}, ErrInvalidWindow
	}
	if len(prices) == 0 {
		return Series{}, ErrEmptySeries
	}

	eff := effectiveWindow(n, len(prices))
	out := make([]float64, len(prices)-eff+1)
	for i := range out {
		low, high := prices[i], prices[i]
		for k := 1; k < eff; k++ {
			low = math.Min(low, prices[i+k])
			high = math.Max(high, prices[i+k])
		}

		num := prices[i+eff-1] - low
		den := high - low
		switch {
		case den == 0 && num == 0:
			out[i] = 0
		case den == 0:
			out[i] = 1
		default:
			// NaN windows fall through here and stay NaN.
			out[i] = num / den
		}
	}

	return Series{Values: out, StartDay: eff - 1, Window: eff}, nil
}

// RSI computes the Relative Strength Index with Wilder smoothing,
// normalized to [0, 1]. The rolling averages are seeded from the first n
// day-over-day deltas: the mean of the positive deltas and the mean of
// the absolute negative deltas, zero when the window has none of that
// sign. Each later day folds its delta in via
// avg = (avg*(n-1) + x) / n. The first output covers day n, so the
// result has len(prices)-n values.
//
// Degenerate cases: zero average gain gives 0; nonzero gain with zero
// loss gives 1. Deltas involving the NaN sentinel count toward neither
// side.
func RSI(prices []float64, n int) (Series, error) {
	if n < 1 {
		return Series{}, ErrInvalidWindow
	}
	if len(prices) < 2 {
		return Series{}, ErrEmptySeries
	}

	deltas := make([]float64, len(prices)-1)
	for i := range deltas {
		deltas[i] = prices[i+1] - prices[i]
	}

	eff := effectiveWindow(n, len(deltas))

	var gainSum, lossSum float64
	var gainCount, lossCount int
	for _, d := range deltas[:eff] {
		if d > 0 {
			gainSum += d
			gainCount++
		} else if d < 0 {
			lossSum += -d
			lossCount++
		}
	}

	var avgGain, avgLoss float64
	if gainCount > 0 {
		avgGain = gainSum / float64(gainCount)
	}
	if lossCount > 0 {
		avgLoss = lossSum / float64(lossCount)
	}

	out := make([]float64, len(deltas)-eff+1)
	out[0] = rsiValue(avgGain, avgLoss)

	for k := eff; k < len(deltas); k++ {
		var gain, loss float64
		if deltas[k] > 0 {
			gain = deltas[k]
		} else if deltas[k] < 0 {
			loss = -deltas[k]
		}
		avgGain = (avgGain*float64(eff-1) + gain) / float64(eff)
		avgLoss = (avgLoss*float64(eff-1) + loss) / float64(eff)
		out[k-eff+1] = rsiValue(avgGain, avgLoss)
	}

	return Series{Values: out, StartDay: eff, Window: eff}, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgGain == 0 {
		return 0
	}
	if avgLoss == 0 {
		return 1
	}
	rs := avgGain / avgLoss
	return 1 - 1/(1+rs)
}
