package model

import "time"

// LedgerEntry is one persisted transaction of a backtest run. The table
// is append-only: rows are only ever inserted, never updated or deleted.
type LedgerEntry struct {
	ID         uint      `gorm:"primarykey"`
	RunID      uint      `gorm:"not null;index"`
	Type       string    `gorm:"not null"`
	Day        int       `gorm:"not null"`
	Instrument int       `gorm:"not null"`
	Shares     float64   `gorm:"not null"`
	Price      float64   `gorm:"not null"`
	NetCapital float64   `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
