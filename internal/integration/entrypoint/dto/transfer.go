// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/balance-board/backend/internal/application/usecase/transfer"
)

// TransferRequest represents a fund transfer request. The amount travels as a
// decimal string so client float formatting never reaches the ledger.
type TransferRequest struct {
	SourceID    string `json:"source_id" binding:"required"`
	TargetID    string `json:"target_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// TransferResponse represents a committed transfer.
type TransferResponse struct {
	ExpenseEntry  TransactionResponse `json:"expense_entry"`
	IncomeEntry   TransactionResponse `json:"income_entry"`
	SourceBalance string              `json:"source_balance"`
	TargetBalance string              `json:"target_balance"`
	CommittedAt   time.Time           `json:"committed_at"`
}

// ToTransferResponse converts a transfer result to its response DTO.
func ToTransferResponse(output *transfer.TransferFundsOutput) TransferResponse {
	return TransferResponse{
		ExpenseEntry:  ToTransactionResponse(output.ExpenseEntry),
		IncomeEntry:   ToTransactionResponse(output.IncomeEntry),
		SourceBalance: output.SourceBalance.String(),
		TargetBalance: output.TargetBalance.String(),
		CommittedAt:   output.CommittedAt,
	}
}
