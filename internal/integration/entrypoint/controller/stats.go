// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balance-board/backend/internal/application/usecase/stats"
	"github.com/balance-board/backend/internal/integration/entrypoint/dto"
)

// StatsController handles ledger aggregation endpoints.
type StatsController struct {
	getUseCase   *stats.GetStatsUseCase
	watchUseCase *stats.WatchStatsUseCase
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(getUseCase *stats.GetStatsUseCase, watchUseCase *stats.WatchStatsUseCase) *StatsController {
	return &StatsController{
		getUseCase:   getUseCase,
		watchUseCase: watchUseCase,
	}
}

// Get handles GET /stats requests.
func (c *StatsController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve stats",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatsResponse(output))
}

// Stream handles GET /stats/stream requests. It pushes the current totals
// over server-sent events after every ledger change until the client
// disconnects.
func (c *StatsController) Stream(ctx *gin.Context) {
	stream, err := c.watchUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to open stats stream",
		})
		return
	}

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		output, ok := <-stream
		if !ok {
			return false
		}
		ctx.SSEvent("stats", dto.ToStatsResponse(output))
		return true
	})
}
