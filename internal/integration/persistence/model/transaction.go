// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/domain/entity"
)

// TransactionModel represents the append-only transactions table in the
// database. Rows are never updated or deleted.
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	FromCategory string          `gorm:"type:varchar(120);not null"`
	ToCategory   string          `gorm:"type:varchar(120);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description  string          `gorm:"type:varchar(255);not null"`
	Type         string          `gorm:"type:varchar(10);not null;index"`
	Date         time.Time       `gorm:"not null;index"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		FromCategory: m.FromCategory,
		ToCategory:   m.ToCategory,
		Amount:       m.Amount,
		Description:  m.Description,
		Type:         entity.TransactionType(m.Type),
		Date:         m.Date,
		CreatedAt:    m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:           transaction.ID,
		CategoryID:   transaction.CategoryID,
		FromCategory: transaction.FromCategory,
		ToCategory:   transaction.ToCategory,
		Amount:       transaction.Amount,
		Description:  transaction.Description,
		Type:         string(transaction.Type),
		Date:         transaction.Date,
		CreatedAt:    transaction.CreatedAt,
	}
}
