// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title         string          `gorm:"type:varchar(120);not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Row           int             `gorm:"column:row;not null;index"`
	Color         string          `gorm:"type:varchar(40)"`
	Icon          string          `gorm:"type:varchar(40)"`
	AllowNegative bool            `gorm:"default:false"`
	Version       int64           `gorm:"not null;default:0"` // optimistic-concurrency token
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:            m.ID,
		Title:         m.Title,
		Balance:       m.Balance,
		Row:           entity.Row(m.Row),
		Color:         m.Color,
		Icon:          m.Icon,
		AllowNegative: m.AllowNegative,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:            category.ID,
		Title:         category.Title,
		Balance:       category.Balance,
		Row:           int(category.Row),
		Color:         category.Color,
		Icon:          category.Icon,
		AllowNegative: category.AllowNegative,
		Version:       category.Version,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}
