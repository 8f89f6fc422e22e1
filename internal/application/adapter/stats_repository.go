// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/balance-board/backend/internal/domain/entity"
)

// StatsRepository defines access to the incrementally maintained ledger totals.
type StatsRepository interface {
	// Totals reads the running totals row. Returns zero totals when no
	// transfer has ever committed.
	Totals(ctx context.Context) (*entity.LedgerTotals, error)

	// Recompute refolds the entire ledger into the totals row and returns the
	// result. Used at startup when the row is absent and as a repair path.
	Recompute(ctx context.Context) (*entity.LedgerTotals, error)
}
