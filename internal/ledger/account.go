package ledger

import (
	"errors"
	"math"

	"golang-backtest/internal/market"
)

var ErrAllocationLength = errors.New("ledger: one allocation required per instrument")

// Portfolio holds the current share count per instrument. It is mutated
// exclusively through Account.Buy and Account.Sell.
type Portfolio struct {
	holdings []float64
}

func newPortfolio(instruments int) *Portfolio {
	return &Portfolio{holdings: make([]float64, instruments)}
}

func (p *Portfolio) Shares(instrument int) float64 {
	return p.holdings[instrument]
}

func (p *Portfolio) Instruments() int {
	return len(p.holdings)
}

// Account binds a portfolio, a transaction book, and the price matrix
// the trades execute against. One account is owned by exactly one
// strategy run; it is never shared.
type Account struct {
	matrix    *market.PriceMatrix
	fees      float64
	portfolio *Portfolio
	book      *Book
}

// NewAccount opens an empty account against the given matrix. Every
// transaction pays the same fixed fee regardless of size.
func NewAccount(matrix *market.PriceMatrix, fees float64, sink Sink) *Account {
	return &Account{
		matrix:    matrix,
		fees:      fees,
		portfolio: newPortfolio(matrix.Instruments()),
		book:      NewBook(sink),
	}
}

// OpenAccount opens an account and performs the day-0 initial purchase,
// spending allocations[i] on instrument i.
func OpenAccount(matrix *market.PriceMatrix, fees float64, sink Sink, allocations []float64) (*Account, error) {
	if len(allocations) != matrix.Instruments() {
		return nil, ErrAllocationLength
	}
	a := NewAccount(matrix, fees, sink)
	for i, amount := range allocations {
		a.Buy(0, i, amount)
	}
	return a, nil
}

func (a *Account) Portfolio() *Portfolio {
	return a.portfolio
}

func (a *Account) Book() *Book {
	return a.book
}

// Buy purchases as many whole shares as availableCapital covers after
// fees: floor((availableCapital - fees) / price). A buy that affords
// zero shares is still recorded; only a day on which the instrument
// carries the NaN price sentinel is skipped entirely.
func (a *Account) Buy(day, instrument int, availableCapital float64) {
	price := a.matrix.Price(day, instrument)
	if math.IsNaN(price) {
		return
	}

	shares := math.Floor((availableCapital - a.fees) / price)
	if shares < 0 {
		shares = 0
	}
	a.portfolio.holdings[instrument] += shares

	a.book.append(Transaction{
		Type:       TransactionBuy,
		Day:        day,
		Instrument: instrument,
		Shares:     shares,
		Price:      roundMoney(price),
		NetCapital: roundMoney(-(shares*price + a.fees)),
	})
}

// Sell liquidates the entire position of an instrument in a single
// transaction. Selling with no holding is a silent no-op, which also
// makes the end-of-run force-sell idempotent.
func (a *Account) Sell(day, instrument int) {
	shares := a.portfolio.holdings[instrument]
	if shares == 0 {
		return
	}
	price := a.matrix.Price(day, instrument)
	if math.IsNaN(price) {
		return
	}

	a.portfolio.holdings[instrument] = 0

	a.book.append(Transaction{
		Type:       TransactionSell,
		Day:        day,
		Instrument: instrument,
		Shares:     shares,
		Price:      roundMoney(price),
		NetCapital: roundMoney(shares*price - a.fees),
	})
}

// SellAll liquidates every instrument still held on the given day.
func (a *Account) SellAll(day int) {
	for i := 0; i < a.portfolio.Instruments(); i++ {
		a.Sell(day, i)
	}
}
