// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"log/slog"
	"math/rand"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
	"github.com/balance-board/backend/internal/integration/persistence/model"
)

const (
	// DefaultMaxConflictRetries bounds the transparent re-execution of a
	// transfer after write conflicts.
	DefaultMaxConflictRetries = 5

	// conflictBackoffBase spaces out retry attempts; each attempt adds a
	// random jitter so two colliding writers do not stay in lockstep.
	conflictBackoffBase = 10 * time.Millisecond
)

// transferStore implements the adapter.TransferStore interface over a GORM
// transaction. Concurrency control is optimistic: balance updates carry a
// version predicate, and a zero-row update aborts the attempt with
// ErrWriteConflict so the whole function re-runs against fresh reads.
type transferStore struct {
	db         *gorm.DB
	clock      adapter.Clock
	maxRetries int
}

// NewTransferStore creates a new transfer store instance. maxRetries <= 0
// falls back to DefaultMaxConflictRetries.
func NewTransferStore(db *gorm.DB, clock adapter.Clock, maxRetries int) adapter.TransferStore {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxConflictRetries
	}
	return &transferStore{
		db:         db,
		clock:      clock,
		maxRetries: maxRetries,
	}
}

// RunAtomic executes fn inside a database transaction, re-running it after
// write conflicts up to the retry bound.
func (s *transferStore) RunAtomic(ctx context.Context, fn func(tx adapter.TransferTx) error) error {
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt)*conflictBackoffBase + time.Duration(rand.Int63n(int64(conflictBackoffBase)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&transferTx{tx: tx, now: s.clock.Now().UTC()})
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, adapter.ErrWriteConflict) {
			return mapStorageError(err)
		}

		slog.Debug("transfer attempt hit a write conflict", "attempt", attempt+1)
	}

	return domainerror.NewTransferError(
		domainerror.ErrCodeConflictRetryExhausted,
		"transfer aborted after repeated write conflicts",
		domainerror.ErrConflictRetryExhausted,
	)
}

// transferTx is the per-attempt transaction handle handed to the engine.
type transferTx struct {
	tx  *gorm.DB
	now time.Time
}

// Category re-reads a category inside the transaction.
func (t *transferTx) Category(id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := t.tx.Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// InsertEntry appends an immutable ledger entry.
func (t *transferTx) InsertEntry(entry *entity.Transaction) error {
	result := t.tx.Create(model.TransactionFromEntity(entry))
	return result.Error
}

// UpdateBalance writes the new balance guarded by the version observed at
// read time. Zero rows affected means another commit got there first.
func (t *transferTx) UpdateBalance(category *entity.Category, newBalance decimal.Decimal) error {
	result := t.tx.Model(&model.CategoryModel{}).
		Where("id = ? AND version = ?", category.ID, category.Version).
		Updates(map[string]interface{}{
			"balance":    newBalance,
			"version":    category.Version + 1,
			"updated_at": t.now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return adapter.ErrWriteConflict
	}
	return nil
}

// AddToTotals adjusts the running totals row within the same commit,
// creating it on the first ever transfer.
func (t *transferTx) AddToTotals(balanceDelta, expensesDelta decimal.Decimal) error {
	result := t.tx.Model(&model.LedgerTotalsModel{}).
		Where("id = ?", model.LedgerTotalsID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", balanceDelta),
			"expenses":   gorm.Expr("expenses + ?", expensesDelta),
			"updated_at": t.now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	totalsModel := model.LedgerTotalsModel{
		ID:        model.LedgerTotalsID,
		Balance:   balanceDelta,
		Expenses:  expensesDelta,
		UpdatedAt: t.now,
	}
	return t.tx.Create(&totalsModel).Error
}

// Timestamp is the commit timestamp for this attempt.
func (t *transferTx) Timestamp() time.Time {
	return t.now
}

// mapStorageError translates transport-level failures into the transfer
// taxonomy; domain errors pass through for the controller to classify.
func mapStorageError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return domainerror.NewTransferError(
			domainerror.ErrCodeStorageUnavailable,
			"storage unavailable",
			domainerror.ErrStorageUnavailable,
		)
	}
	return err
}
