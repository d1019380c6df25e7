package strategy

import (
	"testing"

	"golang-backtest/internal/indicator"
	"golang-backtest/internal/ledger"
	"golang-backtest/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatrix(t *testing.T, columns [][]float64) *market.PriceMatrix {
	t.Helper()
	m, err := market.NewPriceMatrix(columns)
	require.NoError(t, err)
	return m
}

func TestNewRandom_InvalidParams(t *testing.T) {
	_, err := NewRandom(RandomParams{Period: 0, Amount: 1000})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewRandom(RandomParams{Period: 7, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRandom_Deterministic(t *testing.T) {
	columns := [][]float64{{100, 101, 102, 101, 100, 99, 98, 99, 100, 101, 102, 103, 104, 105}}

	run := func(seed int64) []ledger.Transaction {
		matrix := newTestMatrix(t, columns)
		account := ledger.NewAccount(matrix, 20, nil)
		s, err := NewRandom(RandomParams{Period: 3, Amount: 1000, Seed: seed})
		require.NoError(t, err)
		require.NoError(t, s.Run(matrix, account))
		return account.Book().Transactions()
	}

	assert.Equal(t, run(42), run(42))
}

func TestRandom_OpensAndClosesEveryRun(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{
		{100, 101, 102, 103, 104, 105, 106, 107},
		{50, 51, 52, 53, 54, 55, 56, 57},
	})
	account := ledger.NewAccount(matrix, 20, nil)

	s, err := NewRandom(RandomParams{Period: 3, Amount: 1000, Seed: 1})
	require.NoError(t, err)
	require.NoError(t, s.Run(matrix, account))

	txs := account.Book().Transactions()
	require.NotEmpty(t, txs)

	// Day-0 purchase per instrument.
	assert.Equal(t, ledger.TransactionBuy, txs[0].Type)
	assert.Equal(t, 0, txs[0].Day)
	assert.Equal(t, ledger.TransactionBuy, txs[1].Type)

	// Everything is liquidated on the final day.
	for i := 0; i < matrix.Instruments(); i++ {
		assert.Equal(t, 0.0, account.Portfolio().Shares(i))
	}
}

func TestNewCrossover_InvalidParams(t *testing.T) {
	// Fast window must be strictly below the slow one.
	_, err := NewCrossover(CrossoverParams{FastWindow: 21, SlowWindow: 7, Amount: 1000})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewCrossover(CrossoverParams{FastWindow: 7, SlowWindow: 21, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestCrossover_SingleGoldenCross(t *testing.T) {
	// A falling then rising series produces exactly one negative-to-positive
	// spread flip on day 5.
	matrix := newTestMatrix(t, [][]float64{{10, 9, 8, 7, 8, 9, 10, 11}})
	account := ledger.NewAccount(matrix, 0, nil)

	s, err := NewCrossover(CrossoverParams{FastWindow: 2, SlowWindow: 3, Amount: 1000})
	require.NoError(t, err)
	require.NoError(t, s.Run(matrix, account))

	txs := account.Book().Transactions()
	require.Len(t, txs, 2)

	assert.Equal(t, ledger.TransactionBuy, txs[0].Type)
	assert.Equal(t, 5, txs[0].Day)
	assert.Equal(t, 111.0, txs[0].Shares)

	assert.Equal(t, ledger.TransactionSell, txs[1].Type)
	assert.Equal(t, 7, txs[1].Day)
	assert.Equal(t, 0.0, account.Portfolio().Shares(0))
}

func TestCrossover_FlatSeriesNeverTrades(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100, 100, 100, 100, 100}})
	account := ledger.NewAccount(matrix, 20, nil)

	s, err := NewCrossover(CrossoverParams{FastWindow: 2, SlowWindow: 3, Amount: 1000})
	require.NoError(t, err)
	require.NoError(t, s.Run(matrix, account))

	assert.Equal(t, 0, account.Book().Len())
}

func TestNewMomentum_InvalidParams(t *testing.T) {
	_, err := NewMomentum(MomentumParams{
		Period:        3,
		LowThreshold:  0.8,
		HighThreshold: 0.2,
		Amount:        1000,
	})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestMomentum_BuysOversoldSellsOverbought(t *testing.T) {
	// Day 2 closes at the window low (oscillator 0, below 0.25) and day 3
	// at the window high (oscillator 1, above 0.75).
	matrix := newTestMatrix(t, [][]float64{{10, 9, 8, 9, 10, 10}})
	account := ledger.NewAccount(matrix, 0, nil)

	s, err := NewMomentum(MomentumParams{
		Oscillator:    indicator.OscillatorStochastic,
		Period:        3,
		LowThreshold:  0.25,
		HighThreshold: 0.75,
		Cooldown:      0,
		Amount:        1000,
	})
	require.NoError(t, err)
	require.NoError(t, s.Run(matrix, account))

	txs := account.Book().Transactions()
	require.Len(t, txs, 2)

	assert.Equal(t, ledger.TransactionBuy, txs[0].Type)
	assert.Equal(t, 2, txs[0].Day)
	assert.Equal(t, 125.0, txs[0].Shares)

	assert.Equal(t, ledger.TransactionSell, txs[1].Type)
	assert.Equal(t, 3, txs[1].Day)
}

func TestMomentum_CooldownSuppressesScans(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{10, 9, 8, 9, 10, 10}})
	account := ledger.NewAccount(matrix, 0, nil)

	// A cooldown longer than the horizon leaves only the day-2 buy and
	// the final-day force-sell.
	s, err := NewMomentum(MomentumParams{
		Oscillator:    indicator.OscillatorStochastic,
		Period:        3,
		LowThreshold:  0.25,
		HighThreshold: 0.75,
		Cooldown:      10,
		Amount:        1000,
	})
	require.NoError(t, err)
	require.NoError(t, s.Run(matrix, account))

	txs := account.Book().Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.TransactionBuy, txs[0].Type)
	assert.Equal(t, 2, txs[0].Day)
	assert.Equal(t, ledger.TransactionSell, txs[1].Type)
	assert.Equal(t, 5, txs[1].Day)
}

func TestStrategyNames(t *testing.T) {
	r, err := NewRandom(RandomParams{Period: 1, Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, "random", r.Name())

	c, err := NewCrossover(CrossoverParams{FastWindow: 1, SlowWindow: 2, Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, "crossover", c.Name())

	m, err := NewMomentum(MomentumParams{Period: 1, LowThreshold: 0.2, HighThreshold: 0.8, Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, "momentum", m.Name())
}
