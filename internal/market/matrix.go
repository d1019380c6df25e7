// Package market holds the shared price data types consumed by the
// indicator and strategy engines.
package market

import (
	"errors"
	"math"
)

var ErrUnevenColumns = errors.New("market: all price columns must have the same length")

// PriceMatrix is a days x instruments grid of daily closing prices.
// It is immutable after construction: the indicator and strategy engines
// only ever read from it, so a single matrix can back any number of runs.
type PriceMatrix struct {
	columns [][]float64 // one series per instrument
	days    int
}

// NewPriceMatrix builds a matrix from per-instrument price columns.
func NewPriceMatrix(columns [][]float64) (*PriceMatrix, error) {
	if len(columns) == 0 {
		return nil, errors.New("market: at least one price column required")
	}
	days := len(columns[0])
	for _, col := range columns[1:] {
		if len(col) != days {
			return nil, ErrUnevenColumns
		}
	}
	return &PriceMatrix{columns: columns, days: days}, nil
}

func (m *PriceMatrix) Days() int {
	return m.days
}

func (m *PriceMatrix) Instruments() int {
	return len(m.columns)
}

// Price returns the closing price of an instrument on a given day.
// A NaN marks a day on which the simulated price went non-positive.
func (m *PriceMatrix) Price(day, instrument int) float64 {
	return m.columns[instrument][day]
}

// Column returns the full price series of one instrument. The returned
// slice is the backing array; callers must not mutate it.
func (m *PriceMatrix) Column(instrument int) []float64 {
	return m.columns[instrument]
}

// Valid reports whether the price for the given day is a real quote
// rather than the NaN sentinel.
func (m *PriceMatrix) Valid(day, instrument int) bool {
	return !math.IsNaN(m.columns[instrument][day])
}
