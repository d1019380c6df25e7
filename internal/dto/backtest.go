package dto

// BacktestRequest describes one simulated horizon and the strategies to
// evaluate against it. Optional fields fall back to the configured
// defaults.
type BacktestRequest struct {
	Days          int       `json:"days" validate:"required,gte=2"`
	InitialPrices []float64 `json:"initial_prices" validate:"required,min=1,dive,gt=0"`
	Volatilities  []float64 `json:"volatilities" validate:"required,min=1,dive,gte=0"`
	NewsChance    *float64  `json:"news_chance" validate:"omitempty,gte=0,lte=1"`
	Fees          *float64  `json:"fees" validate:"omitempty,gte=0"`
	Seed          int64     `json:"seed"`
	Source        string    `json:"source" validate:"omitempty,oneof=generated reference"`

	Strategies []StrategyRequest `json:"strategies" validate:"required,min=1,dive"`
}

// StrategyRequest selects one policy plus its parameters. Fields not used
// by the selected type are ignored; zero values fall back to defaults
// before validation.
type StrategyRequest struct {
	Type   string  `json:"type" validate:"required,oneof=random crossover momentum"`
	Amount float64 `json:"amount" validate:"omitempty,gt=0"`

	// random
	Period int   `json:"period"`
	Seed   int64 `json:"seed"`

	// crossover
	FastWindow int `json:"fast_window"`
	SlowWindow int `json:"slow_window"`

	// momentum
	Oscillator    string  `json:"oscillator" validate:"omitempty,oneof=stochastic rsi"`
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`
	Cooldown      int     `json:"cooldown"`
}

// TransactionRecord is one ledger line of a run.
type TransactionRecord struct {
	Type       string  `json:"type"`
	Day        int     `json:"day"`
	Instrument int     `json:"instrument"`
	Shares     float64 `json:"shares"`
	Price      float64 `json:"price"`
	NetCapital float64 `json:"net_capital"`
}

// LedgerSummary aggregates the capital flow of one ledger.
type LedgerSummary struct {
	DaysSimulated     int     `json:"days_simulated"`
	TotalTransactions int     `json:"total_transactions"`
	TotalBought       int     `json:"total_bought"`
	TotalSold         int     `json:"total_sold"`
	TotalSpent        float64 `json:"total_spent"`
	TotalEarned       float64 `json:"total_earned"`
	NetCapital        float64 `json:"net_capital"`
}

// StrategyResult is the outcome of one strategy over the shared matrix.
type StrategyResult struct {
	RunID        uint                `json:"run_id"`
	Strategy     string              `json:"strategy"`
	Summary      LedgerSummary       `json:"summary"`
	Transactions []TransactionRecord `json:"transactions"`
}

// BacktestResult is the response for a full backtest request.
type BacktestResult struct {
	Days        int              `json:"days"`
	Instruments int              `json:"instruments"`
	Seed        int64            `json:"seed"`
	Source      string           `json:"source"`
	Results     []StrategyResult `json:"results"`
}
