package strategy

import (
	"math"

	"golang-backtest/internal/indicator"
	"golang-backtest/internal/ledger"
	"golang-backtest/internal/market"
)

// MomentumParams configures the oscillator momentum policy.
type MomentumParams struct {
	// Oscillator is resolved once here; no per-call string dispatch.
	Oscillator indicator.Oscillator
	// Period is the oscillator window in days.
	Period int `validate:"gte=1"`
	// LowThreshold triggers a buy when crossed from above, HighThreshold
	// a sell. Both are on the oscillator's [0, 1] scale.
	LowThreshold  float64 `validate:"gte=0,ltfield=HighThreshold"`
	HighThreshold float64 `validate:"lte=1"`
	// Cooldown is the number of days after an action during which the
	// instrument is not scanned again.
	Cooldown int     `validate:"gte=0"`
	Amount   float64 `validate:"gt=0"`
}

// Momentum buys oversold and sells overbought instruments according to a
// stochastic or RSI oscillator, with a refractory window after every
// action.
type Momentum struct {
	params MomentumParams
}

func NewMomentum(params MomentumParams) (*Momentum, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return &Momentum{params: params}, nil
}

func (s *Momentum) Name() string {
	return "momentum"
}

func (s *Momentum) Run(matrix *market.PriceMatrix, account *ledger.Account) error {
	days := matrix.Days()

	for instrument := 0; instrument < matrix.Instruments(); instrument++ {
		osc, err := s.params.Oscillator.Compute(matrix.Column(instrument), s.params.Period)
		if err != nil {
			return err
		}

		nextScan := osc.StartDay
		for day := osc.StartDay; day < days; day++ {
			if day < nextScan {
				continue
			}
			value, ok := osc.At(day)
			if !ok {
				continue
			}
			if math.IsNaN(value) {
				value = 0
			}

			switch {
			case value < s.params.LowThreshold:
				account.Buy(day, instrument, s.params.Amount)
				nextScan = day + s.params.Cooldown + 1
			case value > s.params.HighThreshold:
				account.Sell(day, instrument)
				nextScan = day + s.params.Cooldown + 1
			}
		}
	}

	account.SellAll(days - 1)
	return nil
}
