package service

import (
	"golang-backtest/config"
	"golang-backtest/internal/repository"
	"golang-backtest/pkg/cache"
	"golang-backtest/pkg/logger"
)

type Service struct {
	BacktestService  BacktestService
	ReportService    ReportService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	backtestService := NewBacktestService(cfg, log, inmemoryCache, repo.BacktestRunRepo, repo.LedgerRepo, repo.ReferencePriceRepo)
	reportService := NewReportService(log, repo.BacktestRunRepo, repo.LedgerRepo)
	schedulerService := NewSchedulerService(cfg, log, backtestService)

	return &Service{
		BacktestService:  backtestService,
		ReportService:    reportService,
		SchedulerService: schedulerService,
	}
}
