// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// DateLayout is the calendar date format used for transaction and loan dates.
const DateLayout = "2006-01-02"

// MaxDescriptionLength is the maximum length of a transaction description.
const MaxDescriptionLength = 255

// Transaction represents a single income or expense entry in the ledger.
// Amount is always positive; Type carries the sign.
type Transaction struct {
	ID          uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	transactionType TransactionType,
	amount decimal.Decimal,
	category string,
	description string,
	date time.Time,
	now time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Type:        transactionType,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SignedAmount returns the amount as it affects the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// DateString returns the transaction date in YYYY-MM-DD form.
func (t *Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// TransactionFilter defines filter options for listing transactions.
// Both date bounds are inclusive.
type TransactionFilter struct {
	Type      *TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
	Count        int
}

// SumTransactions totals the transactions accepted by include.
// A nil include accepts every transaction.
func SumTransactions(transactions []*Transaction, include func(*Transaction) bool) TransactionTotals {
	totals := TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, t := range transactions {
		if include != nil && !include(t) {
			continue
		}
		switch t.Type {
		case TransactionTypeIncome:
			totals.IncomeTotal = totals.IncomeTotal.Add(t.Amount)
		case TransactionTypeExpense:
			totals.ExpenseTotal = totals.ExpenseTotal.Add(t.Amount)
		}
		totals.Count++
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals
}
