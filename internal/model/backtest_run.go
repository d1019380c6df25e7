package model

import (
	"time"

	"gorm.io/datatypes"
)

// BacktestRun is one evaluated strategy over one simulated horizon.
type BacktestRun struct {
	ID           uint           `gorm:"primarykey"`
	Strategy     string         `gorm:"not null"`
	Days         int            `gorm:"not null"`
	Instruments  int            `gorm:"not null"`
	Seed         int64          `gorm:"not null"`
	Params       datatypes.JSON `gorm:"type:jsonb"`
	TotalSpent   float64
	TotalEarned  float64
	NetCapital   float64
	Transactions int
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}
