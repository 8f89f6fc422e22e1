// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
)

// MaxTitleLength is the maximum allowed length for category titles.
const MaxTitleLength = 120

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Title          string
	InitialBalance decimal.Decimal
	Row            entity.Row
	Color          string
	Icon           string
	AllowNegative  bool
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles administrative category creation. Balances
// set here are the only ones written outside the transfer engine's atomic
// path, and only because the category does not exist yet.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	notifier     adapter.ChangeNotifier
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, notifier adapter.ChangeNotifier) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		notifier:     notifier,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryTitleRequired,
			"category title is required",
			domainerror.ErrCategoryTitleRequired,
		)
	}
	if len(title) > MaxTitleLength {
		title = title[:MaxTitleLength]
	}

	if !input.Row.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidRow,
			"row must be 1 (client), 2 (employee), 3 (project) or 4 (warehouse)",
			domainerror.ErrInvalidRow,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	category := entity.NewCategory(title, input.InitialBalance, input.Row, color, icon, input.AllowNegative)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err := uc.notifier.Publish(ctx, adapter.TopicCategories); err != nil {
		slog.Warn("failed to publish category change", "error", err)
	}

	return &CreateCategoryOutput{Category: category}, nil
}
