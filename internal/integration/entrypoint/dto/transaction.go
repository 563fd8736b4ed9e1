package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type        string           `json:"type" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Description string           `json:"description"`
	Date        string           `json:"date" binding:"required"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

// CreateExportLinkRequest represents the request body for a download link.
type CreateExportLinkRequest struct {
	Format string `json:"format,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// BalanceResponse represents the current balance.
type BalanceResponse struct {
	CurrentBalance string `json:"current_balance"`
	TotalIncome    string `json:"total_income"`
	TotalExpenses  string `json:"total_expenses"`
}

// SummaryResponse represents the monthly dashboard figures.
type SummaryResponse struct {
	CurrentBalance        string  `json:"current_balance"`
	Month                 string  `json:"month"`
	MonthlyIncome         string  `json:"monthly_income"`
	MonthlyExpenses       string  `json:"monthly_expenses"`
	PreviousMonth         string  `json:"previous_month"`
	PreviousMonthIncome   string  `json:"previous_month_income"`
	PreviousMonthExpenses string  `json:"previous_month_expenses"`
	IncomeTrend           *string `json:"income_trend,omitempty"`
	ExpenseTrend          *string `json:"expense_trend,omitempty"`
	TransactionCount      int     `json:"transaction_count"`
}

// ExportLinkResponse represents a signed download link.
type ExportLinkResponse struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		Type:        string(txn.Type),
		Amount:      money(txn.Amount),
		Category:    txn.Category,
		Description: txn.Description,
		Date:        dateString(txn.Date),
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return TransactionListResponse{Transactions: transactions}
}

// ToBalanceResponse converts a GetBalanceOutput to a BalanceResponse.
func ToBalanceResponse(output *transaction.GetBalanceOutput) BalanceResponse {
	return BalanceResponse{
		CurrentBalance: money(output.CurrentBalance),
		TotalIncome:    money(output.TotalIncome),
		TotalExpenses:  money(output.TotalExpenses),
	}
}

// ToSummaryResponse converts a GetSummaryOutput to a SummaryResponse.
// A trend is omitted when there is nothing to compare.
func ToSummaryResponse(output *transaction.GetSummaryOutput) SummaryResponse {
	response := SummaryResponse{
		CurrentBalance:        money(output.CurrentBalance),
		Month:                 output.Month,
		MonthlyIncome:         money(output.MonthlyIncome),
		MonthlyExpenses:       money(output.MonthlyExpenses),
		PreviousMonth:         output.PreviousMonth,
		PreviousMonthIncome:   money(output.PreviousMonthIncome),
		PreviousMonthExpenses: money(output.PreviousMonthExpenses),
		TransactionCount:      output.TransactionCount,
	}
	if label, ok := output.IncomeTrend.Label(); ok {
		response.IncomeTrend = &label
	}
	if label, ok := output.ExpenseTrend.Label(); ok {
		response.ExpenseTrend = &label
	}
	return response
}
