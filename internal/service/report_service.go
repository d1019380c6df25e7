package service

import (
	"context"
	"math"

	"golang-backtest/internal/dto"
	"golang-backtest/internal/ledger"
	"golang-backtest/internal/model"
	"golang-backtest/internal/repository"
	"golang-backtest/pkg/logger"
)

// ReportService reads finished runs back out of storage and summarizes
// their ledgers.
type ReportService interface {
	GetRunLedger(ctx context.Context, runID uint) ([]dto.TransactionRecord, error)
	GetRunReport(ctx context.Context, runID uint) (*dto.StrategyResult, error)
}

type reportService struct {
	log        *logger.Logger
	runRepo    repository.BacktestRunRepository
	ledgerRepo repository.LedgerRepository
}

func NewReportService(log *logger.Logger, runRepo repository.BacktestRunRepository, ledgerRepo repository.LedgerRepository) ReportService {
	return &reportService{
		log:        log,
		runRepo:    runRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *reportService) GetRunLedger(ctx context.Context, runID uint) ([]dto.TransactionRecord, error) {
	entries, err := s.ledgerRepo.FindByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return entriesToRecords(entries), nil
}

func (s *reportService) GetRunReport(ctx context.Context, runID uint) (*dto.StrategyResult, error) {
	run, err := s.runRepo.FindByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}

	transactions := make([]ledger.Transaction, len(entries))
	for i, e := range entries {
		transactions[i] = ledger.Transaction{
			Type:       ledger.TransactionType(e.Type),
			Day:        e.Day,
			Instrument: e.Instrument,
			Shares:     e.Shares,
			Price:      e.Price,
			NetCapital: e.NetCapital,
		}
	}

	return &dto.StrategyResult{
		RunID:        run.ID,
		Strategy:     run.Strategy,
		Summary:      SummarizeTransactions(transactions),
		Transactions: entriesToRecords(entries),
	}, nil
}

func entriesToRecords(entries []model.LedgerEntry) []dto.TransactionRecord {
	records := make([]dto.TransactionRecord, len(entries))
	for i, e := range entries {
		records[i] = dto.TransactionRecord{
			Type:       e.Type,
			Day:        e.Day,
			Instrument: e.Instrument,
			Shares:     e.Shares,
			Price:      e.Price,
			NetCapital: e.NetCapital,
		}
	}
	return records
}

// SummarizeTransactions folds a transaction log into its capital-flow
// summary. Spent is the absolute capital that left on buys, earned the
// capital that came back on sells; transactions carrying the NaN price
// sentinel contribute nothing to either total.
func SummarizeTransactions(transactions []ledger.Transaction) dto.LedgerSummary {
	summary := dto.LedgerSummary{
		TotalTransactions: len(transactions),
	}

	minDay, maxDay := math.MaxInt, 0
	for _, tx := range transactions {
		if tx.Day < minDay {
			minDay = tx.Day
		}
		if tx.Day > maxDay {
			maxDay = tx.Day
		}

		switch tx.Type {
		case ledger.TransactionBuy:
			summary.TotalBought++
			if !math.IsNaN(tx.NetCapital) {
				summary.TotalSpent += math.Abs(tx.NetCapital)
			}
		case ledger.TransactionSell:
			summary.TotalSold++
			if !math.IsNaN(tx.NetCapital) {
				summary.TotalEarned += tx.NetCapital
			}
		}
	}

	if len(transactions) > 0 {
		summary.DaysSimulated = maxDay - minDay
	}
	summary.NetCapital = summary.TotalEarned - summary.TotalSpent

	return summary
}
