// Package ledger tracks per-instrument holdings and records every trade
// in an append-only transaction book.
package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// Transaction is one immutable trade record. NetCapital is negative for
// buys (shares*price plus fees) and positive for sells (shares*price
// minus fees). Price and NetCapital are rounded to 2 decimal places when
// the record is written; all earlier arithmetic keeps full precision.
type Transaction struct {
	Type       TransactionType
	Day        int
	Instrument int
	Shares     float64
	Price      float64
	NetCapital float64
}

// Sink receives each transaction as it is recorded. Appends are
// fire-and-forget: a failing sink never fails the run, so
// implementations are expected to report their own errors.
type Sink interface {
	Append(tx Transaction) error
}

// Book is the strictly append-only transaction log of one run. Records
// are never rewritten or removed once appended.
type Book struct {
	records []Transaction
	sink    Sink
}

// NewBook creates an empty book. sink may be nil for purely in-memory runs.
func NewBook(sink Sink) *Book {
	return &Book{sink: sink}
}

func (b *Book) append(tx Transaction) {
	b.records = append(b.records, tx)
	if b.sink != nil {
		_ = b.sink.Append(tx)
	}
}

func (b *Book) Len() int {
	return len(b.records)
}

// Transactions returns a copy of the log in emission order.
func (b *Book) Transactions() []Transaction {
	out := make([]Transaction, len(b.records))
	copy(out, b.records)
	return out
}

// roundMoney rounds a monetary amount to 2 decimal places. The NaN and
// infinity sentinels pass through untouched.
func roundMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
