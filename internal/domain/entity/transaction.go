// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of ledger entry (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction is one immutable leg of a transfer. Every transfer posts
// exactly two of these: an expense leg (negative amount, against the source
// category) and an income leg (positive amount, same absolute value, against
// the target), sharing the same date, titles and description.
type Transaction struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	FromCategory string // source title snapshot at posting time
	ToCategory   string // target title snapshot at posting time
	Amount       decimal.Decimal // negative for expenses, positive for income
	Description  string
	Type         TransactionType
	Date         time.Time // commit timestamp, shared by both legs
	CreatedAt    time.Time
}

// NewTransaction creates a new ledger entry.
func NewTransaction(
	categoryID uuid.UUID,
	fromCategory string,
	toCategory string,
	amount decimal.Decimal,
	description string,
	transactionType TransactionType,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:           uuid.New(),
		CategoryID:   categoryID,
		FromCategory: fromCategory,
		ToCategory:   toCategory,
		Amount:       amount,
		Description:  description,
		Type:         transactionType,
		Date:         date,
		CreatedAt:    time.Now().UTC(),
	}
}
