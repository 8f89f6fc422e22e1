// Package stats contains the ledger aggregation use cases.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/balance-board/backend/internal/application/adapter"
)

// RecomputeTotalsUseCase refolds the full ledger into the totals row. The
// server runs it once at startup so a database restored from before the
// incremental totals existed still reports correct figures. Cost grows with
// ledger size, which is why it is not on any request path.
type RecomputeTotalsUseCase struct {
	statsRepo adapter.StatsRepository
}

// NewRecomputeTotalsUseCase creates a new RecomputeTotalsUseCase instance.
func NewRecomputeTotalsUseCase(statsRepo adapter.StatsRepository) *RecomputeTotalsUseCase {
	return &RecomputeTotalsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute refolds the ledger and returns the fresh totals.
func (uc *RecomputeTotalsUseCase) Execute(ctx context.Context) (*GetStatsOutput, error) {
	totals, err := uc.statsRepo.Recompute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute ledger totals: %w", err)
	}

	slog.Info("ledger totals recomputed",
		"balance", totals.Balance.String(),
		"expenses", totals.Expenses.String(),
	)

	return &GetStatsOutput{
		Balance:  totals.Balance,
		Expenses: totals.Expenses,
	}, nil
}
