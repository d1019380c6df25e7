package service

import (
	"context"

	"golang-backtest/config"
	"golang-backtest/internal/dto"
	"golang-backtest/pkg/logger"
	"golang-backtest/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs the backtests configured under scheduler.jobs on
// their cron expressions.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg             *config.Config
	log             *logger.Logger
	backtestService BacktestService
	cron            *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, backtestService BacktestService) SchedulerService {
	return &schedulerService{
		cfg:             cfg,
		log:             log,
		backtestService: backtestService,
		cron:            cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	for _, job := range s.cfg.Scheduler.Jobs {
		job := job
		// A panicking backtest must not take the cron runner down.
		_, err := s.cron.AddFunc(job.Cron, func() {
			utils.GoSafe(func() {
				s.runJob(ctx, job)
			})
		})
		if err != nil {
			s.log.Error("Failed to register scheduled backtest",
				logger.ErrorField(err),
				logger.StringField("job", job.Name),
				logger.StringField("cron", job.Cron),
			)
			return err
		}
		s.log.Info("Scheduled backtest registered",
			logger.StringField("job", job.Name),
			logger.StringField("cron", job.Cron),
		)
	}

	s.cron.Start()
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *schedulerService) runJob(ctx context.Context, job config.ScheduledBacktest) {
	if !utils.ShouldContinue(ctx, s.log) {
		return
	}
	s.log.InfoContext(ctx, "Running scheduled backtest", logger.StringField("job", job.Name))

	req := dto.BacktestRequest{
		Days:          job.Days,
		InitialPrices: job.InitialPrices,
		Volatilities:  job.Volatilities,
		Seed:          job.Seed,
		Strategies: []dto.StrategyRequest{
			{Type: job.Strategy},
		},
	}

	result, err := s.backtestService.RunBacktest(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "Scheduled backtest failed",
			logger.ErrorField(err),
			logger.StringField("job", job.Name),
		)
		return
	}

	for _, res := range result.Results {
		s.log.InfoContext(ctx, "Scheduled backtest finished",
			logger.StringField("job", job.Name),
			logger.StringField("strategy", res.Strategy),
			logger.IntField("run_id", int(res.RunID)),
			logger.IntField("transactions", res.Summary.TotalTransactions),
			logger.Float64Field("net_capital", res.Summary.NetCapital),
		)
	}
}
