package repository

import (
	"context"
	"golang-backtest/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository persists ledger entries. The interface deliberately
// exposes no update or delete: the ledger is append-only.
type LedgerRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	FindByRunID(ctx context.Context, runID uint) ([]model.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) FindByRunID(ctx context.Context, runID uint) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
