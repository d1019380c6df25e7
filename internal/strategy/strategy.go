// Package strategy implements the trading policies evaluated by the
// backtest engine. Each policy reads the immutable price matrix, derives
// whatever indicators it needs, and issues buy/sell transactions against
// an account it owns for the duration of one run.
package strategy

import (
	"errors"
	"fmt"

	"golang-backtest/internal/ledger"
	"golang-backtest/internal/market"

	goValidator "github.com/go-playground/validator/v10"
)

// ErrInvalidParams wraps every parameter precondition failure. Params are
// rejected at construction, before any simulation step runs.
var ErrInvalidParams = errors.New("strategy: invalid parameters")

var validate = goValidator.New()

// Strategy is one decision policy. Run drives the full simulated horizon,
// including the mandatory force-sell of all holdings on the final day.
type Strategy interface {
	Name() string
	Run(matrix *market.PriceMatrix, account *ledger.Account) error
}

func validateParams(params interface{}) error {
	if err := validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
