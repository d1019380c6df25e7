package repository

import (
	"context"
	"golang-backtest/internal/model"

	"gorm.io/gorm"
)

type BacktestRunRepository interface {
	Create(ctx context.Context, run *model.BacktestRun) error
	UpdateSummary(ctx context.Context, run *model.BacktestRun) error
	FindByID(ctx context.Context, id uint) (*model.BacktestRun, error)
}

type backtestRunRepository struct {
	db *gorm.DB
}

func NewBacktestRunRepository(db *gorm.DB) BacktestRunRepository {
	return &backtestRunRepository{db: db}
}

func (r *backtestRunRepository) Create(ctx context.Context, run *model.BacktestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *backtestRunRepository) UpdateSummary(ctx context.Context, run *model.BacktestRun) error {
	return r.db.WithContext(ctx).Model(run).Updates(map[string]interface{}{
		"total_spent":  run.TotalSpent,
		"total_earned": run.TotalEarned,
		"net_capital":  run.NetCapital,
		"transactions": run.Transactions,
	}).Error
}

func (r *backtestRunRepository) FindByID(ctx context.Context, id uint) (*model.BacktestRun, error) {
	var run model.BacktestRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
