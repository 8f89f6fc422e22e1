// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/balance-board/backend/internal/application/usecase/stats"
)

// StatsResponse represents the dashboard's top-line figures.
type StatsResponse struct {
	Balance  string `json:"balance"`
	Expenses string `json:"expenses"`
	Planned  string `json:"planned"`
}

// ToStatsResponse converts the stats output to its response DTO.
func ToStatsResponse(output *stats.GetStatsOutput) StatsResponse {
	return StatsResponse{
		Balance:  output.Balance.String(),
		Expenses: output.Expenses.String(),
		Planned:  output.Planned.String(),
	}
}
