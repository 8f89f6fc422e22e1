// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/application/usecase/transfer"
	domainerror "github.com/balance-board/backend/internal/domain/error"
	"github.com/balance-board/backend/internal/integration/entrypoint/dto"
)

// TransferController handles fund transfer endpoints.
type TransferController struct {
	transferUseCase *transfer.TransferFundsUseCase
}

// NewTransferController creates a new transfer controller instance.
func NewTransferController(transferUseCase *transfer.TransferFundsUseCase) *TransferController {
	return &TransferController{
		transferUseCase: transferUseCase,
	}
}

// Create handles POST /transfers requests.
func (c *TransferController) Create(ctx *gin.Context) {
	var req dto.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid source category ID format",
			Code:  string(domainerror.ErrCodeInvalidCategoryID),
		})
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target category ID format",
			Code:  string(domainerror.ErrCodeInvalidCategoryID),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	input := transfer.TransferFundsInput{
		SourceID:    sourceID,
		TargetID:    targetID,
		Amount:      amount,
		Description: req.Description,
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransferResponse(output))
}

// handleTransferError handles transfer errors and returns appropriate HTTP responses.
func (c *TransferController) handleTransferError(ctx *gin.Context, err error) {
	var trfErr *domainerror.TransferError
	if errors.As(err, &trfErr) {
		statusCode := c.getStatusCodeForTransferError(trfErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: trfErr.Message,
			Code:  string(trfErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransferError maps transfer error codes to HTTP status codes.
func (c *TransferController) getStatusCodeForTransferError(code domainerror.TransferErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeMissingDescription,
		domainerror.ErrCodeRowsNotAdjacent:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeTransferCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeConflictRetryExhausted:
		return http.StatusConflict
	case domainerror.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
