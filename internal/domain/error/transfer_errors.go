// Package error defines domain-specific errors for the Balance Board application.
package error

import "errors"

// Transfer domain errors.
var (
	// ErrInvalidAmount is returned when the transfer amount is zero or negative.
	ErrInvalidAmount = errors.New("transfer amount must be greater than zero")

	// ErrMissingDescription is returned when the transfer memo is blank.
	ErrMissingDescription = errors.New("transfer description is required")

	// ErrRowsNotAdjacent is returned when the source and target rows may not transact.
	ErrRowsNotAdjacent = errors.New("transfer between these rows is not allowed")

	// ErrInsufficientFunds is returned when the transfer would overdraw a category
	// that does not allow a negative balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransferCategoryNotFound is returned when the source or target category
	// vanished before the transfer committed.
	ErrTransferCategoryNotFound = errors.New("source or target category not found")

	// ErrConflictRetryExhausted is returned when optimistic-concurrency retries
	// were exceeded while committing the transfer.
	ErrConflictRetryExhausted = errors.New("transfer aborted after repeated write conflicts")

	// ErrStorageUnavailable is returned when the underlying store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// TransferErrorCode defines error codes for transfer errors.
// Format: TRF-XXYYYY where XX is category and YYYY is specific error.
type TransferErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount            TransferErrorCode = "TRF-010001"
	ErrCodeMissingDescription       TransferErrorCode = "TRF-010002"
	ErrCodeRowsNotAdjacent          TransferErrorCode = "TRF-010003"
	ErrCodeInsufficientFunds        TransferErrorCode = "TRF-010004"
	ErrCodeTransferCategoryNotFound TransferErrorCode = "TRF-010005"

	// Storage errors (02XXXX)
	ErrCodeConflictRetryExhausted TransferErrorCode = "TRF-020001"
	ErrCodeStorageUnavailable     TransferErrorCode = "TRF-020002"
)

// TransferError represents a transfer error with code and message.
type TransferError struct {
	Code    TransferErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// NewTransferError creates a new TransferError with the given code and message.
func NewTransferError(code TransferErrorCode, message string, err error) *TransferError {
	return &TransferError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
