package ledger

import (
	"math"
	"testing"

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

func TestAccount_Buy(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100, 100}})
	account := NewAccount(matrix, 20, nil)

	// floor((1000 - 20) / 100) = 9 shares for a net outflow of 920.
	account.Buy(0, 0, 1000)

	assert.Equal(t, 9.0, account.Portfolio().Shares(0))

	txs := account.Book().Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, TransactionBuy, txs[0].Type)
	assert.Equal(t, 9.0, txs[0].Shares)
	assert.Equal(t, 100.0, txs[0].Price)
	assert.Equal(t, -920.0, txs[0].NetCapital)
}

func TestAccount_Buy_ZeroShares(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}})
	account := NewAccount(matrix, 20, nil)

	// Capital below the fee affords nothing, but the attempt is still
	// recorded and only the fee leaves the account.
	account.Buy(0, 0, 10)

	assert.Equal(t, 0.0, account.Portfolio().Shares(0))

	txs := account.Book().Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, 0.0, txs[0].Shares)
	assert.Equal(t, -20.0, txs[0].NetCapital)
}

func TestAccount_Buy_SkipsNaNDay(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, math.NaN(), 100}})
	account := NewAccount(matrix, 20, nil)

	account.Buy(1, 0, 1000)

	assert.Equal(t, 0.0, account.Portfolio().Shares(0))
	assert.Equal(t, 0, account.Book().Len())
}

func TestAccount_Sell(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 110}})
	account := NewAccount(matrix, 20, nil)

	account.Buy(0, 0, 1000)
	account.Sell(1, 0)

	assert.Equal(t, 0.0, account.Portfolio().Shares(0))

	txs := account.Book().Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, TransactionSell, txs[1].Type)
	assert.Equal(t, 9.0, txs[1].Shares)
	// 9 * 110 - 20
	assert.Equal(t, 970.0, txs[1].NetCapital)
}

func TestAccount_Sell_NoHoldingIsNoOp(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}})
	account := NewAccount(matrix, 20, nil)

	account.Sell(1, 0)

	assert.Equal(t, 0, account.Book().Len())
}

func TestAccount_SellAll_Idempotent(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}, {50, 50}})
	account := NewAccount(matrix, 20, nil)

	account.Buy(0, 0, 1000)
	account.Buy(0, 1, 1000)

	account.SellAll(1)
	account.SellAll(1)

	// The second pass finds every position already empty.
	assert.Equal(t, 4, account.Book().Len())
	assert.Equal(t, 0.0, account.Portfolio().Shares(0))
	assert.Equal(t, 0.0, account.Portfolio().Shares(1))
}

func TestAccount_ZeroFeeRoundTripIsNeutral(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}})
	account := NewAccount(matrix, 0, nil)

	account.Buy(0, 0, 1000)
	account.Sell(1, 0)

	var net float64
	for _, tx := range account.Book().Transactions() {
		net += tx.NetCapital
	}
	assert.InDelta(t, 0.0, net, 1e-9)
}

func TestOpenAccount(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}, {50, 50}})

	account, err := OpenAccount(matrix, 20, nil, []float64{1000, 500})
	require.NoError(t, err)

	assert.Equal(t, 9.0, account.Portfolio().Shares(0))
	assert.Equal(t, 9.0, account.Portfolio().Shares(1))
	assert.Equal(t, 2, account.Book().Len())

	_, err = OpenAccount(matrix, 20, nil, []float64{1000})
	assert.ErrorIs(t, err, ErrAllocationLength)
}

type recordingSink struct {
	txs []Transaction
}

func (s *recordingSink) Append(tx Transaction) error {
	s.txs = append(s.txs, tx)
	return nil
}

func TestBook_SinkReceivesEveryTransaction(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}})
	sink := &recordingSink{}
	account := NewAccount(matrix, 20, sink)

	account.Buy(0, 0, 1000)
	account.Sell(1, 0)

	assert.Equal(t, account.Book().Transactions(), sink.txs)
}

func TestBook_TransactionsReturnsCopy(t *testing.T) {
	matrix := newTestMatrix(t, [][]float64{{100, 100}})
	account := NewAccount(matrix, 20, nil)
	account.Buy(0, 0, 1000)

	txs := account.Book().Transactions()
	txs[0].Shares = 999

	assert.Equal(t, 9.0, account.Book().Transactions()[0].Shares)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 1.23, roundMoney(1.2349))
	assert.Equal(t, -920.0, roundMoney(-920.0000001))
	assert.True(t, math.IsNaN(roundMoney(math.NaN())))
}
