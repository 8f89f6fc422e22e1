// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
	"github.com/balance-board/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db       *gorm.DB
	notifier adapter.ChangeNotifier
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB, notifier adapter.ChangeNotifier) adapter.CategoryRepository {
	return &categoryRepository{
		db:       db,
		notifier: notifier,
	}
}

// Create persists a new category.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindAll retrieves all categories ordered by row, then creation time.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Order(`"row" ASC, created_at ASC`).
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// Watch streams the full ordered category list on subscribe and after every
// change signal. A transient query failure is logged and skipped; the
// subscription stays alive and the next signal re-queries.
func (r *categoryRepository) Watch(ctx context.Context) (<-chan []*entity.Category, error) {
	signals, err := r.notifier.Subscribe(ctx, adapter.TopicCategories)
	if err != nil {
		return nil, err
	}

	out := make(chan []*entity.Category, 1)

	go func() {
		defer close(out)

		emit := func() {
			categories, err := r.FindAll(ctx)
			if err != nil {
				slog.Warn("category emission skipped", "error", err)
				return
			}
			select {
			case out <- categories:
			case <-ctx.Done():
			}
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out, nil
}
