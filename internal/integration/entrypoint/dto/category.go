package dto

import (
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
)

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	Name             string  `json:"name"`
	Label            string  `json:"label"`
	Icon             string  `json:"icon"`
	Type             string  `json:"type"`
	TransactionCount *int    `json:"transaction_count,omitempty"`
	PeriodTotal      *string `json:"period_total,omitempty"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryListResponse converts a ListCategoriesOutput to CategoryListResponse.
// Statistics are included only when requested for a period.
func ToCategoryListResponse(output *category.ListCategoriesOutput, withStats bool) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryResponse{
			Name:  c.Name,
			Label: c.Label,
			Icon:  c.Icon,
			Type:  string(c.Type),
		}
		if withStats {
			count := c.TransactionCount
			total := money(c.PeriodTotal)
			categories[i].TransactionCount = &count
			categories[i].PeriodTotal = &total
		}
	}
	return CategoryListResponse{Categories: categories}
}
