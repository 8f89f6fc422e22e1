// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/domain/entity"
)

// ErrWriteConflict is returned from a TransferTx write when another commit
// touched one of the read documents since this transaction read it. The
// store retries the whole function on it; any other error aborts.
var ErrWriteConflict = errors.New("concurrent modification detected")

// TransferTx is the handle passed to the function run by RunAtomic. All
// reads see the state as of this attempt; all writes commit together or not
// at all.
type TransferTx interface {
	// Category re-reads a category inside the transaction. Returns
	// domain ErrCategoryNotFound if it no longer exists.
	Category(id uuid.UUID) (*entity.Category, error)

	// InsertEntry appends an immutable ledger entry.
	InsertEntry(entry *entity.Transaction) error

	// UpdateBalance sets the category's balance, guarded by the version
	// observed when the category was read. Returns ErrWriteConflict if the
	// category changed underneath.
	UpdateBalance(category *entity.Category, newBalance decimal.Decimal) error

	// AddToTotals adjusts the running ledger totals within the same commit.
	AddToTotals(balanceDelta, expensesDelta decimal.Decimal) error

	// Timestamp is the commit timestamp for this attempt. Both legs of a
	// transfer must share it.
	Timestamp() time.Time
}

// TransferStore is the transactional Storage Port the transfer engine runs
// against. Implementations must make fn safely re-executable: it is called
// again with fresh reads after a write conflict, up to a bounded number of
// attempts, after which the store surfaces ErrConflictRetryExhausted.
type TransferStore interface {
	RunAtomic(ctx context.Context, fn func(tx TransferTx) error) error
}
