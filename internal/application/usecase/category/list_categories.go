// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Type      *entity.TransactionType // Optional filter by transaction type
	StartDate *time.Time              // Optional start date for statistics
	EndDate   *time.Time              // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	Name             string
	Label            string
	Icon             string
	Type             entity.TransactionType
	TransactionCount int
	PeriodTotal      decimal.Decimal
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(transactionRepo adapter.TransactionRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		transactionRepo: transactionRepo,
	}
}

type statsKey struct {
	t    entity.TransactionType
	name string
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	types := []entity.TransactionType{entity.TransactionTypeExpense, entity.TransactionTypeIncome}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be 'expense' or 'income'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		types = []entity.TransactionType{*input.Type}
	}

	// Statistics only when a full period is given
	var stats map[statsKey]*CategoryOutput
	if input.StartDate != nil && input.EndDate != nil {
		transactions, err := uc.transactionRepo.FindAll(ctx, entity.TransactionFilter{
			Type:      input.Type,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load category statistics: %w", err)
		}

		stats = make(map[statsKey]*CategoryOutput)
		for _, t := range transactions {
			key := statsKey{t: t.Type, name: t.Category}
			s, ok := stats[key]
			if !ok {
				s = &CategoryOutput{PeriodTotal: decimal.Zero}
				stats[key] = s
			}
			s.TransactionCount++
			s.PeriodTotal = s.PeriodTotal.Add(t.Amount)
		}
	}

	output := &ListCategoriesOutput{}
	for _, t := range types {
		for _, c := range entity.CategoriesFor(t) {
			out := &CategoryOutput{
				Name:        c.Name,
				Label:       c.Label,
				Icon:        c.Icon,
				Type:        c.Type,
				PeriodTotal: decimal.Zero,
			}
			if s, ok := stats[statsKey{t: c.Type, name: c.Name}]; ok {
				out.TransactionCount = s.TransactionCount
				out.PeriodTotal = s.PeriodTotal
			}
			output.Categories = append(output.Categories, out)
		}
	}

	return output, nil
}
