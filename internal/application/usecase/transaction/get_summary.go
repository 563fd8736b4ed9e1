package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// GetBalanceOutput represents the current balance.
type GetBalanceOutput struct {
	CurrentBalance decimal.Decimal
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
}

// GetBalanceUseCase recomputes the balance over every stored transaction.
type GetBalanceUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(transactionRepo adapter.TransactionRepository) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute computes the current balance.
func (uc *GetBalanceUseCase) Execute(ctx context.Context) (*GetBalanceOutput, error) {
	transactions, err := uc.transactionRepo.FindAll(ctx, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	totals := entity.SumTransactions(transactions, nil)
	return &GetBalanceOutput{
		CurrentBalance: totals.NetTotal,
		TotalIncome:    totals.IncomeTotal,
		TotalExpenses:  totals.ExpenseTotal,
	}, nil
}

// GetSummaryOutput holds the balance and the month-over-month figures.
type GetSummaryOutput struct {
	CurrentBalance        decimal.Decimal
	Month                 string
	MonthlyIncome         decimal.Decimal
	MonthlyExpenses       decimal.Decimal
	PreviousMonth         string
	PreviousMonthIncome   decimal.Decimal
	PreviousMonthExpenses decimal.Decimal
	IncomeTrend           valueobject.Trend
	ExpenseTrend          valueobject.Trend
	TransactionCount      int
}

// GetSummaryUseCase computes the dashboard figures for the current calendar month.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*GetSummaryOutput, error) {
	transactions, err := uc.transactionRepo.FindAll(ctx, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	current := valueobject.MonthOf(uc.clock.Now())
	previous := current.Previous()

	all := entity.SumTransactions(transactions, nil)
	thisMonth := entity.SumTransactions(transactions, func(t *entity.Transaction) bool {
		return current.Contains(t.Date)
	})
	lastMonth := entity.SumTransactions(transactions, func(t *entity.Transaction) bool {
		return previous.Contains(t.Date)
	})

	return &GetSummaryOutput{
		CurrentBalance:        all.NetTotal,
		Month:                 current.Prefix(),
		MonthlyIncome:         thisMonth.IncomeTotal,
		MonthlyExpenses:       thisMonth.ExpenseTotal,
		PreviousMonth:         previous.Prefix(),
		PreviousMonthIncome:   lastMonth.IncomeTotal,
		PreviousMonthExpenses: lastMonth.ExpenseTotal,
		IncomeTrend:           valueobject.NewTrend(thisMonth.IncomeTotal, lastMonth.IncomeTotal),
		ExpenseTrend:          valueobject.NewTrend(thisMonth.ExpenseTotal, lastMonth.ExpenseTotal),
		TransactionCount:      all.Count,
	}, nil
}
