package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"golang-backtest/config"
	"golang-backtest/internal/indicator"
	"golang-backtest/internal/ledger"
	"golang-backtest/internal/service"
	"golang-backtest/internal/simulation"
	"golang-backtest/internal/strategy"

	"github.com/spf13/cobra"
)

var (
	runDays     int
	runSeed     int64
	runStrategy string
	runPrices   []float64
	runVols     []float64
	runAmount   float64
	runFees     float64
)

// runCmd evaluates one strategy on a freshly generated matrix and prints
// the ledger summary. It never touches the database, which makes it
// handy for quick experiments.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single in-memory backtest and print the result",
	Run:   RunOnce,
}

func init() {
	runCmd.Flags().IntVar(&runDays, "days", 365, "number of simulated days")
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "simulation seed")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "crossover", "strategy type (random, crossover, momentum)")
	runCmd.Flags().Float64SliceVar(&runPrices, "prices", []float64{100}, "initial price per instrument")
	runCmd.Flags().Float64SliceVar(&runVols, "vols", []float64{2}, "volatility per instrument")
	runCmd.Flags().Float64Var(&runAmount, "amount", 5000, "capital per buy")
	runCmd.Flags().Float64Var(&runFees, "fees", 20, "fixed fee per transaction")
}

func RunOnce(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gen, err := simulation.NewGenerator(simulation.Options{
		NewsChance:     cfg.Simulation.NewsChance,
		DriftMinDays:   cfg.Simulation.DriftMinDays,
		DriftMaxDays:   cfg.Simulation.DriftMaxDays,
		MagnitudeScale: cfg.Simulation.MagnitudeScale,
	})
	if err != nil {
		log.Fatalf("Invalid simulation options: %v", err)
	}

	matrix, err := gen.Matrix(runDays, runPrices, runVols, runSeed)
	if err != nil {
		log.Fatalf("Failed to generate price matrix: %v", err)
	}

	strat, err := buildCLIStrategy()
	if err != nil {
		log.Fatalf("Invalid strategy: %v", err)
	}

	account := ledger.NewAccount(matrix, runFees, nil)
	if err := strat.Run(matrix, account); err != nil {
		log.Fatalf("Strategy failed: %v", err)
	}

	summary := service.SummarizeTransactions(account.Book().Transactions())
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal summary: %v", err)
	}
	fmt.Println(string(out))
}

func buildCLIStrategy() (strategy.Strategy, error) {
	switch runStrategy {
	case "random":
		return strategy.NewRandom(strategy.RandomParams{
			Period: 7,
			Amount: runAmount,
			Seed:   runSeed,
		})
	case "crossover":
		return strategy.NewCrossover(strategy.CrossoverParams{
			FastWindow: 7,
			SlowWindow: 21,
			Amount:     runAmount,
		})
	case "momentum":
		return strategy.NewMomentum(strategy.MomentumParams{
			Oscillator:    indicator.OscillatorStochastic,
			Period:        7,
			LowThreshold:  0.25,
			HighThreshold: 0.75,
			Cooldown:      3,
			Amount:        runAmount,
		})
	default:
		return nil, fmt.Errorf("unknown strategy type: %s", runStrategy)
	}
}
