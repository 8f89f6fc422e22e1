// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/balance-board/backend/internal/domain/entity"
)

// TransactionResponse represents one ledger entry in API responses.
type TransactionResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	FromCategory string    `json:"from_category"`
	ToCategory   string    `json:"to_category"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
}

// TransactionListResponse represents a category's transaction history.
type TransactionListResponse struct {
	Data []TransactionResponse `json:"data"`
}

// ToTransactionResponse converts a Transaction entity to its response DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           transaction.ID.String(),
		CategoryID:   transaction.CategoryID.String(),
		FromCategory: transaction.FromCategory,
		ToCategory:   transaction.ToCategory,
		Amount:       transaction.Amount.String(),
		Description:  transaction.Description,
		Type:         string(transaction.Type),
		Date:         transaction.Date,
	}
}

// ToTransactionListResponse converts a transaction list to its response DTO.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	data := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		data[i] = ToTransactionResponse(transaction)
	}
	return TransactionListResponse{Data: data}
}
