package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{
		listUseCase: listUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListCategoriesInput{}

	if typeStr := ctx.Query("type"); typeStr != "" {
		categoryType := entity.TransactionType(typeStr)
		input.Type = &categoryType
	}

	startDateStr, endDateStr := ctx.Query("start_date"), ctx.Query("end_date")
	if startDateStr != "" && endDateStr != "" {
		startDate, err := parseDate(startDateStr)
		if err != nil {
			c.invalidDate(ctx)
			return
		}
		endDate, err := parseDate(endDateStr)
		if err != nil {
			c.invalidDate(ctx)
			return
		}
		input.StartDate = &startDate
		input.EndDate = &endDate
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output, input.StartDate != nil))
}

func (c *CategoryController) invalidDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid date format. Use YYYY-MM-DD",
		Code:  string(domainerror.ErrCodeInvalidTransactionDate),
	})
}
