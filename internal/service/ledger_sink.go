package service

import (
	"context"

	"golang-backtest/internal/ledger"
	"golang-backtest/internal/model"
	"golang-backtest/internal/repository"
	"golang-backtest/pkg/logger"
)

// runSink streams the transactions of one run into the ledger table.
// The book treats appends as fire-and-forget, so failures are logged
// here rather than propagated into the simulation.
type runSink struct {
	ctx        context.Context
	runID      uint
	ledgerRepo repository.LedgerRepository
	log        *logger.Logger
}

func newRunSink(ctx context.Context, runID uint, ledgerRepo repository.LedgerRepository, log *logger.Logger) ledger.Sink {
	return &runSink{
		ctx:        ctx,
		runID:      runID,
		ledgerRepo: ledgerRepo,
		log:        log,
	}
}

func (s *runSink) Append(tx ledger.Transaction) error {
	entry := &model.LedgerEntry{
		RunID:      s.runID,
		Type:       string(tx.Type),
		Day:        tx.Day,
		Instrument: tx.Instrument,
		Shares:     tx.Shares,
		Price:      tx.Price,
		NetCapital: tx.NetCapital,
	}

	if err := s.ledgerRepo.Create(s.ctx, entry); err != nil {
		s.log.ErrorContext(s.ctx, "Failed to persist ledger entry",
			logger.ErrorField(err),
			logger.IntField("run_id", int(s.runID)),
			logger.IntField("day", tx.Day),
		)
		return err
	}
	return nil
}
