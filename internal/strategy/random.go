package strategy

import (
	"math/rand"

	"golang-backtest/internal/ledger"
	"golang-backtest/internal/market"
)

// RandomParams configures the random baseline policy.
type RandomParams struct {
	// Period is how often a decision is taken, in days.
	Period int `validate:"gte=1"`
	// Amount is spent on every purchase, fees included.
	Amount float64 `validate:"gt=0"`
	// Seed drives the action draws; equal seeds replay the same decisions.
	Seed int64
}

// Random buys, sells, or holds each instrument with equal probability at
// fixed intervals. It exists as a baseline to compare real policies
// against.
type Random struct {
	params RandomParams
	rng    *rand.Rand
}

func NewRandom(params RandomParams) (*Random, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return &Random{
		params: params,
		rng:    rand.New(rand.NewSource(params.Seed)),
	}, nil
}

func (s *Random) Name() string {
	return "random"
}

func (s *Random) Run(matrix *market.PriceMatrix, account *ledger.Account) error {
	days := matrix.Days()

	// Day-0 initial purchase, one allocation per instrument.
	for i := 0; i < matrix.Instruments(); i++ {
		account.Buy(0, i, s.params.Amount)
	}

	actions := days/s.params.Period - 1
	for i := 1; i <= actions; i++ {
		day := i * s.params.Period
		for instrument := 0; instrument < matrix.Instruments(); instrument++ {
			switch s.rng.Intn(3) {
			case 1:
				account.Buy(day, instrument, s.params.Amount)
			case 2:
				account.Sell(day, instrument)
			}
		}
	}

	account.SellAll(days - 1)
	return nil
}
