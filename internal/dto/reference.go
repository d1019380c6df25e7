package dto

// ReferenceInstrument is one column of a reference price dataset, with
// the metadata used for nearest-match selection.
type ReferenceInstrument struct {
	Symbol       string    `json:"symbol"`
	InitialPrice float64   `json:"initial_price"`
	Volatility   float64   `json:"volatility"`
	Prices       []float64 `json:"prices"`
}

// ReferenceDataset is a remotely hosted collection of historical price
// columns a backtest can draw from instead of generating its own.
type ReferenceDataset struct {
	Instruments []ReferenceInstrument `json:"instruments"`
}
