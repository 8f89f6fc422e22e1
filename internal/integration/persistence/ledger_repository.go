// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	"github.com/balance-board/backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface. It
// only reads; ledger writes go through the transfer store's atomic path.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// HistoryFor retrieves the most recent entries for a category, newest first.
func (r *ledgerRepository) HistoryFor(ctx context.Context, categoryID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 || limit > adapter.HistoryLimit {
		limit = adapter.HistoryLimit
	}

	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindAll retrieves the whole ledger ordered by date descending.
func (r *ledgerRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
