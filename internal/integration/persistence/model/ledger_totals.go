// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/domain/entity"
)

// LedgerTotalsID is the primary key of the single totals row.
const LedgerTotalsID = 1

// LedgerTotalsModel represents the singleton ledger_totals row, maintained
// transactionally alongside each transfer commit.
type LedgerTotalsModel struct {
	ID        int             `gorm:"primaryKey"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Expenses  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LedgerTotalsModel.
func (LedgerTotalsModel) TableName() string {
	return "ledger_totals"
}

// ToEntity converts a LedgerTotalsModel to a domain LedgerTotals entity.
func (m *LedgerTotalsModel) ToEntity() *entity.LedgerTotals {
	return &entity.LedgerTotals{
		Balance:   m.Balance,
		Expenses:  m.Expenses,
		UpdatedAt: m.UpdatedAt,
	}
}
