package strategy

import (
	"math"

	"golang-backtest/internal/indicator"
	"golang-backtest/internal/ledger"
	"golang-backtest/internal/market"
)

// CrossoverParams configures the moving-average crossover policy. The
// fast window must be strictly shorter than the slow one.
type CrossoverParams struct {
	FastWindow int     `validate:"gte=1,ltfield=SlowWindow"`
	SlowWindow int     `validate:"gte=2"`
	Amount     float64 `validate:"gt=0"`
}

// Crossover trades on sign flips of the fast-minus-slow moving average
// spread: a flip from negative to positive buys, positive to negative
// sells.
type Crossover struct {
	params CrossoverParams
}

func NewCrossover(params CrossoverParams) (*Crossover, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return &Crossover{params: params}, nil
}

func (s *Crossover) Name() string {
	return "crossover"
}

func (s *Crossover) Run(matrix *market.PriceMatrix, account *ledger.Account) error {
	days := matrix.Days()

	for instrument := 0; instrument < matrix.Instruments(); instrument++ {
		prices := matrix.Column(instrument)

		fast, err := indicator.MovingAverage(prices, s.params.FastWindow)
		if err != nil {
			return err
		}
		slow, err := indicator.MovingAverage(prices, s.params.SlowWindow)
		if err != nil {
			return err
		}

		// Walk the calendar days where both averages are defined; the
		// slow one starts later. The last nonzero spread carries across
		// flat or NaN days so a genuine sign change is never missed.
		prev := math.NaN()
		for day := slow.StartDay; day < days; day++ {
			f, ok := fast.At(day)
			if !ok {
				continue
			}
			sl, ok := slow.At(day)
			if !ok {
				continue
			}

			spread := f - sl
			if math.IsNaN(spread) || spread == 0 {
				continue
			}

			if !math.IsNaN(prev) {
				if prev < 0 && spread > 0 {
					account.Buy(day, instrument, s.params.Amount)
				} else if prev > 0 && spread < 0 {
					account.Sell(day, instrument)
				}
			}
			prev = spread
		}
	}

	account.SellAll(days - 1)
	return nil
}
