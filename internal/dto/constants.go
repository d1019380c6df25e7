package dto

const (
	SourceGenerated = "generated"
	SourceReference = "reference"
)

const (
	StrategyRandom    = "random"
	StrategyCrossover = "crossover"
	StrategyMomentum  = "momentum"
)
