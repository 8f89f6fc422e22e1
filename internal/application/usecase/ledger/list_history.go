// Package ledger contains ledger query use cases.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
)

// ListHistoryInput represents the input for a category history query.
type ListHistoryInput struct {
	CategoryID uuid.UUID
	Limit      int // 0 means the full cap
}

// ListHistoryOutput represents the output of a category history query.
type ListHistoryOutput struct {
	Transactions []*entity.Transaction
}

// ListHistoryUseCase retrieves the most recent ledger entries posted against
// a category, newest first, capped at adapter.HistoryLimit.
type ListHistoryUseCase struct {
	ledgerRepo   adapter.LedgerRepository
	categoryRepo adapter.CategoryRepository
}

// NewListHistoryUseCase creates a new ListHistoryUseCase instance.
func NewListHistoryUseCase(ledgerRepo adapter.LedgerRepository, categoryRepo adapter.CategoryRepository) *ListHistoryUseCase {
	return &ListHistoryUseCase{
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the history query. An unknown category is an error rather
// than an empty history, so the UI can tell a stale link from a quiet ledger.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, input ListHistoryInput) (*ListHistoryOutput, error) {
	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	limit := input.Limit
	if limit <= 0 || limit > adapter.HistoryLimit {
		limit = adapter.HistoryLimit
	}

	transactions, err := uc.ledgerRepo.HistoryFor(ctx, input.CategoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return &ListHistoryOutput{Transactions: transactions}, nil
}
