// Package transfer contains the fund-transfer use case.
package transfer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transfer memos.
const MaxDescriptionLength = 255

// Policy holds the configurable transfer rules.
type Policy struct {
	// AllowNegativeBalance permits overdrawing any source category. When
	// false, only categories flagged allow_negative may go below zero.
	AllowNegativeBalance bool
}

// TransferFundsInput represents the input for a fund transfer.
type TransferFundsInput struct {
	SourceID    uuid.UUID
	TargetID    uuid.UUID
	Amount      decimal.Decimal
	Description string
}

// TransferFundsOutput represents the result of a committed transfer.
type TransferFundsOutput struct {
	ExpenseEntry  *entity.Transaction
	IncomeEntry   *entity.Transaction
	SourceBalance decimal.Decimal
	TargetBalance decimal.Decimal
	CommittedAt   time.Time
}

// TransferFundsUseCase moves funds between two categories as one atomic
// operation: two ledger legs, two balance updates and the totals adjustment
// commit together or not at all. The body re-reads both categories on every
// attempt, so the store may re-execute it after a write conflict without
// double-applying the delta.
type TransferFundsUseCase struct {
	store    adapter.TransferStore
	notifier adapter.ChangeNotifier
	policy   Policy
}

// NewTransferFundsUseCase creates a new TransferFundsUseCase instance.
func NewTransferFundsUseCase(store adapter.TransferStore, notifier adapter.ChangeNotifier, policy Policy) *TransferFundsUseCase {
	return &TransferFundsUseCase{
		store:    store,
		notifier: notifier,
		policy:   policy,
	}
}

// Execute performs the transfer.
func (uc *TransferFundsUseCase) Execute(ctx context.Context, input TransferFundsInput) (*TransferFundsOutput, error) {
	// Validation happens before any I/O; these errors are never retried.
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeInvalidAmount,
			"transfer amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeMissingDescription,
			"a transfer description is required",
			domainerror.ErrMissingDescription,
		)
	}
	if len(description) > MaxDescriptionLength {
		description = description[:MaxDescriptionLength]
	}

	var output *TransferFundsOutput

	err := uc.store.RunAtomic(ctx, func(tx adapter.TransferTx) error {
		// Fresh reads inside the transaction guard against lost updates from
		// concurrent transfers.
		source, err := tx.Category(input.SourceID)
		if err != nil {
			return mapCategoryRead(err)
		}
		target, err := tx.Category(input.TargetID)
		if err != nil {
			return mapCategoryRead(err)
		}

		if !entity.CanTransfer(source.Row, target.Row) {
			return domainerror.NewTransferError(
				domainerror.ErrCodeRowsNotAdjacent,
				"transfer from "+source.Row.String()+" to "+target.Row.String()+" is not allowed",
				domainerror.ErrRowsNotAdjacent,
			)
		}

		newSourceBalance := source.Balance.Sub(input.Amount)
		newTargetBalance := target.Balance.Add(input.Amount)

		if newSourceBalance.IsNegative() && !uc.policy.AllowNegativeBalance && !source.AllowNegative {
			return domainerror.NewTransferError(
				domainerror.ErrCodeInsufficientFunds,
				"category "+source.Title+" cannot go below zero",
				domainerror.ErrInsufficientFunds,
			)
		}

		// One commit timestamp shared by both legs.
		committedAt := tx.Timestamp()

		expense := entity.NewTransaction(
			source.ID, source.Title, target.Title,
			input.Amount.Neg(), description, entity.TransactionTypeExpense, committedAt,
		)
		income := entity.NewTransaction(
			target.ID, source.Title, target.Title,
			input.Amount, description, entity.TransactionTypeIncome, committedAt,
		)

		if err := tx.InsertEntry(expense); err != nil {
			return err
		}
		if err := tx.InsertEntry(income); err != nil {
			return err
		}
		if err := tx.UpdateBalance(source, newSourceBalance); err != nil {
			return err
		}
		if err := tx.UpdateBalance(target, newTargetBalance); err != nil {
			return err
		}

		// Both legs together net to zero on the balance total; only the
		// expenses total moves by the transferred amount.
		if err := tx.AddToTotals(expense.Amount.Add(income.Amount), input.Amount); err != nil {
			return err
		}

		output = &TransferFundsOutput{
			ExpenseEntry:  expense,
			IncomeEntry:   income,
			SourceBalance: newSourceBalance,
			TargetBalance: newTargetBalance,
			CommittedAt:   committedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx)

	slog.Info("transfer committed",
		"source_id", input.SourceID,
		"target_id", input.TargetID,
		"amount", input.Amount.String(),
	)

	return output, nil
}

// publish signals the live subscriptions. A failed publish does not undo the
// committed transfer; watchers catch up on their next signal.
func (uc *TransferFundsUseCase) publish(ctx context.Context) {
	if err := uc.notifier.Publish(ctx, adapter.TopicCategories); err != nil {
		slog.Warn("failed to publish category change", "error", err)
	}
	if err := uc.notifier.Publish(ctx, adapter.TopicLedger); err != nil {
		slog.Warn("failed to publish ledger change", "error", err)
	}
}

// mapCategoryRead converts repository not-found errors into the transfer
// taxonomy; anything else passes through untouched.
func mapCategoryRead(err error) error {
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return domainerror.NewTransferError(
			domainerror.ErrCodeTransferCategoryNotFound,
			"source or target category no longer exists",
			domainerror.ErrTransferCategoryNotFound,
		)
	}
	return err
}
