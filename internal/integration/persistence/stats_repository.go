// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	"github.com/balance-board/backend/internal/integration/persistence/model"
)

// statsRepository implements the adapter.StatsRepository interface.
type statsRepository struct {
	db    *gorm.DB
	clock adapter.Clock
}

// NewStatsRepository creates a new stats repository instance.
func NewStatsRepository(db *gorm.DB, clock adapter.Clock) adapter.StatsRepository {
	return &statsRepository{
		db:    db,
		clock: clock,
	}
}

// Totals reads the running totals row, or zero totals when it does not exist
// yet (no transfer has ever committed).
func (r *statsRepository) Totals(ctx context.Context) (*entity.LedgerTotals, error) {
	var totalsModel model.LedgerTotalsModel
	result := r.db.WithContext(ctx).Where("id = ?", model.LedgerTotalsID).First(&totalsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return &entity.LedgerTotals{
				Balance:  decimal.Zero,
				Expenses: decimal.Zero,
			}, nil
		}
		return nil, result.Error
	}
	return totalsModel.ToEntity(), nil
}

// Recompute refolds the whole ledger into the totals row inside one
// transaction, so a transfer committing concurrently is either fully
// included or fully excluded.
func (r *statsRepository) Recompute(ctx context.Context) (*entity.LedgerTotals, error) {
	var refolded *entity.LedgerTotals

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transactionModels []model.TransactionModel
		if result := tx.Order("date ASC, created_at ASC").Find(&transactionModels); result.Error != nil {
			return result.Error
		}

		balance := decimal.Zero
		expenses := decimal.Zero
		for _, tm := range transactionModels {
			balance = balance.Add(tm.Amount)
			if tm.Amount.IsNegative() {
				expenses = expenses.Add(tm.Amount.Abs())
			}
		}

		now := r.clock.Now().UTC()
		totalsModel := model.LedgerTotalsModel{
			ID:        model.LedgerTotalsID,
			Balance:   balance,
			Expenses:  expenses,
			UpdatedAt: now,
		}
		if result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "expenses", "updated_at"}),
		}).Create(&totalsModel); result.Error != nil {
			return result.Error
		}

		refolded = totalsModel.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return refolded, nil
}
