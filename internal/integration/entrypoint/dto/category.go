// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/balance-board/backend/internal/domain/entity"
)

// CategoryResponse represents a category in API responses. The balance is a
// plain decimal string; currency formatting is the client's concern.
type CategoryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Balance       string    `json:"balance"`
	Row           int       `json:"row"`
	Color         string    `json:"color"`
	Icon          string    `json:"icon"`
	AllowNegative bool      `json:"allow_negative"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CategoryListResponse represents the ordered category list.
type CategoryListResponse struct {
	Data []CategoryResponse `json:"data"`
}

// CreateCategoryRequest represents the administrative category creation request.
type CreateCategoryRequest struct {
	Title          string `json:"title" binding:"required"`
	InitialBalance string `json:"initial_balance"`
	Row            int    `json:"row" binding:"required"`
	Color          string `json:"color"`
	Icon           string `json:"icon"`
	AllowNegative  bool   `json:"allow_negative"`
}

// ToCategoryResponse converts a Category entity to its response DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:            category.ID.String(),
		Title:         category.Title,
		Balance:       category.Balance.String(),
		Row:           int(category.Row),
		Color:         category.Color,
		Icon:          category.Icon,
		AllowNegative: category.AllowNegative,
		UpdatedAt:     category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a category list to its response DTO.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	data := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		data[i] = ToCategoryResponse(category)
	}
	return CategoryListResponse{Data: data}
}
