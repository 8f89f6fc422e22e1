// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
)

// WatchCategoriesUseCase exposes the live category stream. Each emission is
// the full ordered list, not a delta; consumers simply replace their state.
type WatchCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewWatchCategoriesUseCase creates a new WatchCategoriesUseCase instance.
func NewWatchCategoriesUseCase(categoryRepo adapter.CategoryRepository) *WatchCategoriesUseCase {
	return &WatchCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute subscribes to category changes. The stream closes when ctx is done.
func (uc *WatchCategoriesUseCase) Execute(ctx context.Context) (<-chan []*entity.Category, error) {
	return uc.categoryRepo.Watch(ctx)
}
