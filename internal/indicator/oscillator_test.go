package indicator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOscillator(t *testing.T) {
	osc, err := ParseOscillator("stochastic")
	require.NoError(t, err)
	assert.Equal(t, OscillatorStochastic, osc)

	osc, err = ParseOscillator("RSI")
	require.NoError(t, err)
	assert.Equal(t, OscillatorRSI, osc)

	_, err = ParseOscillator("macd")
	assert.Error(t, err)
}

func TestStochastic(t *testing.T) {
	t.Run("close at extremes", func(t *testing.T) {
		got, err := Stochastic([]float64{1, 2, 3, 2, 1}, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, got.StartDay)
		// Windows: [1 2 3] closes at the high, [2 3 2] and [3 2 1] at the low.
		assert.InDeltaSlice(t, []float64{1, 0, 0}, got.Values, 1e-9)
	})

	t.Run("values stay within unit range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		prices := make([]float64, 200)
		prices[0] = 100
		for i := 1; i < len(prices); i++ {
			prices[i] = prices[i-1] + rng.NormFloat64()
		}

		got, err := Stochastic(prices, 14)
		require.NoError(t, err)
		for i, v := range got.Values {
			assert.GreaterOrEqualf(t, v, 0.0, "index %d", i)
			assert.LessOrEqualf(t, v, 1.0, "index %d", i)
		}
	})

	t.Run("flat window", func(t *testing.T) {
		got, err := Stochastic([]float64{5, 5, 5}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, got.Values)
	})

	t.Run("nan window stays nan", func(t *testing.T) {
		got, err := Stochastic([]float64{1, math.NaN(), 3, 4}, 3)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(got.Values[0]))
		assert.True(t, math.IsNaN(got.Values[1]))
	})

	t.Run("window shrinks", func(t *testing.T) {
		got, err := Stochastic([]float64{1, 3}, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Window)
		assert.InDeltaSlice(t, []float64{1}, got.Values, 1e-9)
	})
}

func TestRSI(t *testing.T) {
	t.Run("monotonic rise is one", func(t *testing.T) {
		got, err := RSI([]float64{1, 2, 3, 4, 5, 6, 7}, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got.StartDay)
		assert.Len(t, got.Values, 4)
		for _, v := range got.Values {
			assert.Equal(t, 1.0, v)
		}
	})

	t.Run("monotonic fall is zero", func(t *testing.T) {
		got, err := RSI([]float64{7, 6, 5, 4, 3, 2, 1}, 3)
		require.NoError(t, err)
		for _, v := range got.Values {
			assert.Equal(t, 0.0, v)
		}
	})

	t.Run("balanced moves sit at the midpoint", func(t *testing.T) {
		// Alternating +1/-1 deltas seed equal average gain and loss.
		got, err := RSI([]float64{10, 11, 10, 11, 10}, 4)
		require.NoError(t, err)
		require.Len(t, got.Values, 1)
		assert.InDelta(t, 0.5, got.Values[0], 1e-9)
	})

	t.Run("values stay within unit range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		prices := make([]float64, 300)
		prices[0] = 100
		for i := 1; i < len(prices); i++ {
			prices[i] = prices[i-1] + rng.NormFloat64()
		}

		got, err := RSI(prices, 14)
		require.NoError(t, err)
		for i, v := range got.Values {
			assert.GreaterOrEqualf(t, v, 0.0, "index %d", i)
			assert.LessOrEqualf(t, v, 1.0, "index %d", i)
		}
	})

	t.Run("too short", func(t *testing.T) {
		_, err := RSI([]float64{5}, 3)
		assert.ErrorIs(t, err, ErrEmptySeries)
	})
}

func TestOscillator_Compute(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	stoch, err := OscillatorStochastic.Compute(prices, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, stoch.StartDay)

	rsi, err := OscillatorRSI.Compute(prices, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, rsi.StartDay)
}
