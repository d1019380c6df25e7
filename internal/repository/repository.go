package repository

import (
	"golang-backtest/config"
	"golang-backtest/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	BacktestRunRepo    BacktestRunRepository
	LedgerRepo         LedgerRepository
	ReferencePriceRepo ReferencePriceRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		BacktestRunRepo:    NewBacktestRunRepository(db),
		LedgerRepo:         NewLedgerRepository(db),
		ReferencePriceRepo: NewReferencePriceRepository(cfg, log),
	}, nil
}
