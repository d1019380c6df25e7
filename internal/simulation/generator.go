// Package simulation generates synthetic daily price series with
// stochastic drift and randomly occurring news shocks.
package simulation

import (
	"errors"
	"math"
	"math/rand"

	"golang-backtest/internal/market"
)

// Defaults used when an Options field is left at its zero value.
const (
	DefaultNewsChance     = 0.5
	DefaultDriftMinDays   = 3
	DefaultDriftMaxDays   = 15 // exclusive
	DefaultMagnitudeScale = 2.0
)

var (
	ErrInvalidDays       = errors.New("simulation: days must be at least 1")
	ErrInvalidChance     = errors.New("simulation: news chance must be within [0, 1]")
	ErrInvalidDriftRange = errors.New("simulation: drift duration range must satisfy 0 < min < max")
	ErrLengthMismatch    = errors.New("simulation: initial prices and volatilities must have the same length")
)

// Options tunes the news-event model of a Generator.
type Options struct {
	// NewsChance is the probability of a news event triggering on any day.
	NewsChance float64
	// DriftMinDays and DriftMaxDays bound the duration of a news event;
	// a duration is sampled uniformly from [min, max).
	DriftMinDays int
	DriftMaxDays int
	// MagnitudeScale is the standard deviation of the news magnitude draw.
	MagnitudeScale float64
}

// DefaultOptions returns the canonical news-event model.
func DefaultOptions() Options {
	return Options{
		NewsChance:     DefaultNewsChance,
		DriftMinDays:   DefaultDriftMinDays,
		DriftMaxDays:   DefaultDriftMaxDays,
		MagnitudeScale: DefaultMagnitudeScale,
	}
}

// Generator produces reproducible price series. It holds no random state
// itself; every generation call owns its own seeded source, so concurrent
// generations never interleave draws.
type Generator struct {
	opts Options
}

func NewGenerator(opts Options) (*Generator, error) {
	if opts.NewsChance < 0 || opts.NewsChance > 1 {
		return nil, ErrInvalidChance
	}
	if opts.DriftMinDays <= 0 || opts.DriftMinDays >= opts.DriftMaxDays {
		return nil, ErrInvalidDriftRange
	}
	if opts.MagnitudeScale <= 0 {
		opts.MagnitudeScale = DefaultMagnitudeScale
	}
	return &Generator{opts: opts}, nil
}

// Series generates a daily closing price series of the given length.
// Day 0 is fixed at initialPrice. Each later day adds a volatility
// increment plus the accumulated drift of any active news events. A day
// whose candidate price would be non-positive is recorded as NaN; the NaN
// then propagates through the additive recurrence for the remaining days.
//
// The same seed always reproduces the same series bit for bit.
func (g *Generator) Series(days int, initialPrice, volatility float64, seed int64) ([]float64, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}

	prices := make([]float64, days)
	prices[0] = initialPrice

	// Drift deposited by an event on the last day can extend past the
	// horizon; those tail entries are written and never read.
	drift := make([]float64, days+g.opts.DriftMaxDays)

	rng := rand.New(rand.NewSource(seed))

	for day := 1; day < days; day++ {
		increment := rng.NormFloat64() * volatility

		if rng.Float64() < g.opts.NewsChance {
			m := rng.NormFloat64() * g.opts.MagnitudeScale
			duration := g.opts.DriftMinDays + rng.Intn(g.opts.DriftMaxDays-g.opts.DriftMinDays)
			eventDrift := m * volatility
			for d := day; d < day+duration; d++ {
				drift[d] += eventDrift
			}
		}

		candidate := prices[day-1] + increment + drift[day]
		if candidate <= 0 {
			prices[day] = math.NaN()
		} else {
			// A NaN candidate lands here too: NaN <= 0 is false, and the
			// NaN carries forward on its own.
			prices[day] = candidate
		}
	}

	return prices, nil
}

// Matrix generates one independent series per instrument. Column i is
// seeded with seed+i, so the matrix is reproducible as a whole while the
// columns stay uncorrelated.
func (g *Generator) Matrix(days int, initialPrices, volatilities []float64, seed int64) (*market.PriceMatrix, error) {
	if len(initialPrices) != len(volatilities) {
		return nil, ErrLengthMismatch
	}

	columns := make([][]float64, len(initialPrices))
	for i := range initialPrices {
		series, err := g.Series(days, initialPrices[i], volatilities[i], seed+int64(i))
		if err != nil {
			return nil, err
		}
		columns[i] = series
	}

	return market.NewPriceMatrix(columns)
}
