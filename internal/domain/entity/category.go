// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "bg-emerald-500"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "Home"

// Category represents a balance bucket on the board. Its balance is a plain
// signed decimal; currency formatting belongs to the presentation layer.
type Category struct {
	ID            uuid.UUID
	Title         string
	Balance       decimal.Decimal
	Row           Row
	Color         string
	Icon          string
	AllowNegative bool // per-category overdraft override
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the
// Application layer (UseCase) before calling this constructor.
func NewCategory(title string, balance decimal.Decimal, row Row, color, icon string, allowNegative bool) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:            uuid.New(),
		Title:         title,
		Balance:       balance,
		Row:           row,
		Color:         color,
		Icon:          icon,
		AllowNegative: allowNegative,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
