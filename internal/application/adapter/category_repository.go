// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/balance-board/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create persists a new category. Categories are created administratively;
	// their balances are only ever mutated through the transfer engine.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll retrieves all categories ordered by row ascending, then by
	// creation time for a stable layout.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Watch streams the full, ordered category list: once on subscribe and
	// again after every change. The channel closes when ctx is done.
	Watch(ctx context.Context) (<-chan []*entity.Category, error)
}
