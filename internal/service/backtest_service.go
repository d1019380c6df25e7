package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/internal/indicator"
	"golang-backtest/internal/ledger"
	"golang-backtest/internal/market"
	"golang-backtest/internal/model"
	"golang-backtest/internal/repository"
	"golang-backtest/internal/simulation"
	"golang-backtest/internal/strategy"
	"golang-backtest/pkg/cache"
	"golang-backtest/pkg/logger"
	"golang-backtest/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const referenceDatasetCacheKey = "reference_dataset"

// Fallback strategy parameters applied when a request leaves them unset.
const (
	defaultRandomPeriod     = 7
	defaultFastWindow       = 7
	defaultSlowWindow       = 21
	defaultMomentumPeriod   = 7
	defaultLowThreshold     = 0.25
	defaultHighThreshold    = 0.75
	defaultMomentumCooldown = 3
)

// BacktestService evaluates trading strategies against a shared,
// immutable price matrix and records every trade in the ledger.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error)
}

type backtestService struct {
	cfg        *config.Config
	log        *logger.Logger
	cache      cache.Cache
	runRepo    repository.BacktestRunRepository
	ledgerRepo repository.LedgerRepository
	refRepo    repository.ReferencePriceRepository
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	runRepo repository.BacktestRunRepository,
	ledgerRepo repository.LedgerRepository,
	refRepo repository.ReferencePriceRepository,
) BacktestService {
	return &backtestService{
		cfg:        cfg,
		log:        log,
		cache:      inmemoryCache,
		runRepo:    runRepo,
		ledgerRepo: ledgerRepo,
		refRepo:    refRepo,
	}
}

// RunBacktest builds the price matrix once and evaluates every requested
// strategy against it. Each strategy owns its own account and ledger, so
// they run concurrently; the matrix itself is read-only and shared.
func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error) {
	if len(req.InitialPrices) != len(req.Volatilities) {
		return nil, fmt.Errorf("initial_prices and volatilities must have the same length")
	}

	if s.cfg.Backtest.TimeoutDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Backtest.TimeoutDuration)
		defer cancel()
	}

	source := req.Source
	if source == "" {
		source = dto.SourceGenerated
	}

	matrix, err := s.buildMatrix(ctx, req, source)
	if err != nil {
		return nil, err
	}

	fees := utils.ValueOr(req.Fees, s.cfg.Backtest.Fees)

	results := make([]dto.StrategyResult, len(req.Strategies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Backtest.MaxConcurrency)

	for i, stratReq := range req.Strategies {
		i, stratReq := i, stratReq
		g.Go(func() error {
			result, err := s.runStrategy(gctx, req, stratReq, matrix, fees)
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.IntField("days", matrix.Days()),
		logger.IntField("instruments", matrix.Instruments()),
		logger.IntField("strategies", len(results)),
	)

	return &dto.BacktestResult{
		Days:        matrix.Days(),
		Instruments: matrix.Instruments(),
		Seed:        req.Seed,
		Source:      source,
		Results:     results,
	}, nil
}

func (s *backtestService) runStrategy(ctx context.Context, req dto.BacktestRequest, stratReq dto.StrategyRequest, matrix *market.PriceMatrix, fees float64) (*dto.StrategyResult, error) {
	strat, err := s.buildStrategy(stratReq)
	if err != nil {
		return nil, err
	}

	params, err := json.Marshal(stratReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strategy params: %w", err)
	}

	run := &model.BacktestRun{
		Strategy:    strat.Name(),
		Days:        matrix.Days(),
		Instruments: matrix.Instruments(),
		Seed:        req.Seed,
		Params:      params,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create backtest run: %w", err)
	}

	account := ledger.NewAccount(matrix, fees, newRunSink(ctx, run.ID, s.ledgerRepo, s.log))

	started := time.Now()
	if err := strat.Run(matrix, account); err != nil {
		return nil, fmt.Errorf("strategy %s failed: %w", strat.Name(), err)
	}

	transactions := account.Book().Transactions()
	summary := SummarizeTransactions(transactions)

	run.TotalSpent = summary.TotalSpent
	run.TotalEarned = summary.TotalEarned
	run.NetCapital = summary.NetCapital
	run.Transactions = summary.TotalTransactions
	if err := s.runRepo.UpdateSummary(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to update run summary", logger.ErrorField(err), logger.IntField("run_id", int(run.ID)))
	}

	s.log.DebugContext(ctx, "Strategy evaluated",
		logger.StringField("strategy", strat.Name()),
		logger.IntField("run_id", int(run.ID)),
		logger.IntField("transactions", summary.TotalTransactions),
		logger.Float64Field("net_capital", summary.NetCapital),
		logger.Field("elapsed", time.Since(started)),
	)

	records := make([]dto.TransactionRecord, len(transactions))
	for i, tx := range transactions {
		records[i] = dto.TransactionRecord{
			Type:       string(tx.Type),
			Day:        tx.Day,
			Instrument: tx.Instrument,
			Shares:     tx.Shares,
			Price:      tx.Price,
			NetCapital: tx.NetCapital,
		}
	}

	return &dto.StrategyResult{
		RunID:        run.ID,
		Strategy:     strat.Name(),
		Summary:      summary,
		Transactions: records,
	}, nil
}

// buildMatrix produces the price matrix for a request, either generated
// from the simulation parameters or selected from the reference dataset.
// Generated matrices are deterministic in the request parameters, so
// repeated identical requests reuse a cached one.
func (s *backtestService) buildMatrix(ctx context.Context, req dto.BacktestRequest, source string) (*market.PriceMatrix, error) {
	if source == dto.SourceReference {
		dataset, err := s.getReferenceDataset(ctx)
		if err != nil {
			return nil, err
		}
		columns, err := repository.SelectColumns(dataset, req.Days, req.InitialPrices, req.Volatilities)
		if err != nil {
			return nil, err
		}
		return market.NewPriceMatrix(columns)
	}

	newsChance := utils.ValueOr(req.NewsChance, s.cfg.Simulation.NewsChance)

	cacheKey := fmt.Sprintf("matrix:%d:%d:%.4f:%v:%v", req.Days, req.Seed, newsChance, req.InitialPrices, req.Volatilities)
	if matrix, ok := cache.GetTyped[*market.PriceMatrix](s.cache, cacheKey); ok {
		return matrix, nil
	}

	gen, err := simulation.NewGenerator(simulation.Options{
		NewsChance:     newsChance,
		DriftMinDays:   s.cfg.Simulation.DriftMinDays,
		DriftMaxDays:   s.cfg.Simulation.DriftMaxDays,
		MagnitudeScale: s.cfg.Simulation.MagnitudeScale,
	})
	if err != nil {
		return nil, err
	}

	matrix, err := gen.Matrix(req.Days, req.InitialPrices, req.Volatilities, req.Seed)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, matrix, s.cfg.Cache.DefaultExpiration)
	return matrix, nil
}

func (s *backtestService) getReferenceDataset(ctx context.Context) (*dto.ReferenceDataset, error) {
	if dataset, ok := cache.GetTyped[*dto.ReferenceDataset](s.cache, referenceDatasetCacheKey); ok {
		return dataset, nil
	}

	dataset, err := s.refRepo.GetDataset(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(referenceDatasetCacheKey, dataset, s.cfg.Cache.DefaultExpiration)
	return dataset, nil
}

// buildStrategy resolves a strategy request into a constructed policy,
// applying configured defaults to unset fields. Parameter preconditions
// are enforced by the constructors.
func (s *backtestService) buildStrategy(req dto.StrategyRequest) (strategy.Strategy, error) {
	amount := req.Amount
	if amount == 0 {
		amount = s.cfg.Backtest.Amount
	}

	switch req.Type {
	case dto.StrategyRandom:
		period := req.Period
		if period == 0 {
			period = defaultRandomPeriod
		}
		return strategy.NewRandom(strategy.RandomParams{
			Period: period,
			Amount: amount,
			Seed:   req.Seed,
		})

	case dto.StrategyCrossover:
		fast, slow := req.FastWindow, req.SlowWindow
		if fast == 0 && slow == 0 {
			fast, slow = defaultFastWindow, defaultSlowWindow
		}
		return strategy.NewCrossover(strategy.CrossoverParams{
			FastWindow: fast,
			SlowWindow: slow,
			Amount:     amount,
		})

	case dto.StrategyMomentum:
		osc := indicator.OscillatorStochastic
		if req.Oscillator != "" {
			parsed, err := indicator.ParseOscillator(req.Oscillator)
			if err != nil {
				return nil, err
			}
			osc = parsed
		}
		period := req.Period
		if period == 0 {
			period = defaultMomentumPeriod
		}
		low, high := req.LowThreshold, req.HighThreshold
		if low == 0 && high == 0 {
			low, high = defaultLowThreshold, defaultHighThreshold
		}
		cooldown := req.Cooldown
		if cooldown == 0 {
			cooldown = defaultMomentumCooldown
		}
		return strategy.NewMomentum(strategy.MomentumParams{
			Oscillator:    osc,
			Period:        period,
			LowThreshold:  low,
			HighThreshold: high,
			Cooldown:      cooldown,
			Amount:        amount,
		})

	default:
		return nil, fmt.Errorf("unknown strategy type: %s", req.Type)
	}
}
