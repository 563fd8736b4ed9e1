package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow is one line of a bank-statement style export.
// Exactly one of Withdrawal and Deposit is set.
type StatementRow struct {
	Date        time.Time
	Description string
	Withdrawal  *decimal.Decimal
	Deposit     *decimal.Decimal
	Balance     decimal.Decimal
}

// Statement is the ordered list of rows plus the closing balance.
type Statement struct {
	Rows           []StatementRow
	ClosingBalance decimal.Decimal
}

// BuildStatement orders transactions by date ascending, ties broken by
// creation time, and accumulates a running balance in that order.
func BuildStatement(transactions []*Transaction) Statement {
	ordered := make([]*Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	balance := decimal.Zero
	rows := make([]StatementRow, 0, len(ordered))
	for _, t := range ordered {
		balance = balance.Add(t.SignedAmount())

		description := t.Description
		if strings.TrimSpace(description) == "" {
			description = t.Category
		}

		amount := t.Amount
		row := StatementRow{
			Date:        t.Date,
			Description: description,
			Balance:     balance,
		}
		if t.Type == TransactionTypeExpense {
			row.Withdrawal = &amount
		} else {
			row.Deposit = &amount
		}
		rows = append(rows, row)
	}

	return Statement{Rows: rows, ClosingBalance: balance}
}
