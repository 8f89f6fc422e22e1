// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/balance-board/backend/internal/domain/entity"
)

// HistoryLimit is the maximum number of ledger entries a history query may
// return. It bounds the UI payload; callers wanting more must page.
const HistoryLimit = 100

// LedgerRepository defines read access to the append-only transaction ledger.
// Entries are only ever written through the TransferStore's atomic path.
type LedgerRepository interface {
	// HistoryFor retrieves the most recent entries posted against the given
	// category, ordered by date descending. The limit is clamped to
	// HistoryLimit.
	HistoryFor(ctx context.Context, categoryID uuid.UUID, limit int) ([]*entity.Transaction, error)

	// FindAll retrieves the whole ledger ordered by date descending. Used by
	// the totals refold; grows with the ledger, so not exposed over HTTP.
	FindAll(ctx context.Context) ([]*entity.Transaction, error)
}
