// Package stats contains the ledger aggregation use cases.
package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/application/adapter"
)

// GetStatsOutput represents the dashboard's top-line figures.
type GetStatsOutput struct {
	// Balance is the sum of every ledger entry amount. Both legs of each
	// transfer are included, so a closed transfer nets to zero here; the
	// figure tracks recorded money movement, not net worth.
	Balance decimal.Decimal

	// Expenses is the sum of absolute values of all expense legs.
	Expenses decimal.Decimal

	// Planned is a placeholder for an unimplemented upstream feature.
	Planned decimal.Decimal
}

// GetStatsUseCase reads the incrementally maintained ledger totals.
type GetStatsUseCase struct {
	statsRepo adapter.StatsRepository
}

// NewGetStatsUseCase creates a new GetStatsUseCase instance.
func NewGetStatsUseCase(statsRepo adapter.StatsRepository) *GetStatsUseCase {
	return &GetStatsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute returns the current totals.
func (uc *GetStatsUseCase) Execute(ctx context.Context) (*GetStatsOutput, error) {
	totals, err := uc.statsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger totals: %w", err)
	}

	return &GetStatsOutput{
		Balance:  totals.Balance,
		Expenses: totals.Expenses,
		Planned:  decimal.Zero,
	}, nil
}
