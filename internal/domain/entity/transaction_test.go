package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSumTransactions(t *testing.T) {
	now := time.Now()
	txs := []*Transaction{
		NewTransaction(TransactionTypeExpense, dec("50"), "food", "", day("2025-09-01"), now),
		NewTransaction(TransactionTypeIncome, dec("1000"), "salary", "", day("2025-09-01"), now),
		NewTransaction(TransactionTypeExpense, dec("20.50"), "transport", "", day("2025-08-15"), now),
	}

	all := SumTransactions(txs, nil)
	assert.True(t, all.IncomeTotal.Equal(dec("1000")))
	assert.True(t, all.ExpenseTotal.Equal(dec("70.50")))
	assert.True(t, all.NetTotal.Equal(dec("929.50")))
	assert.Equal(t, 3, all.Count)

	september := SumTransactions(txs, func(t *Transaction) bool { return t.Date.Month() == time.September })
	assert.Equal(t, "950.00", september.NetTotal.StringFixed(2))
	assert.Equal(t, 2, september.Count)
}

func TestSumTransactions_Empty(t *testing.T) {
	totals := SumTransactions(nil, nil)
	assert.True(t, totals.NetTotal.IsZero())
	assert.Zero(t, totals.Count)
}

func TestBuildStatement(t *testing.T) {
	base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	later := NewTransaction(TransactionTypeExpense, dec("50"), "food", "", day("2025-09-03"), base)
	salary := NewTransaction(TransactionTypeIncome, dec("1000"), "salary", "September pay", day("2025-09-01"), base.Add(time.Minute))
	rent := NewTransaction(TransactionTypeExpense, dec("400"), "housing", "Rent", day("2025-09-01"), base.Add(2*time.Minute))

	statement := BuildStatement([]*Transaction{later, rent, salary})

	require.Len(t, statement.Rows, 3)

	assert.Equal(t, "September pay", statement.Rows[0].Description)
	require.NotNil(t, statement.Rows[0].Deposit)
	assert.Nil(t, statement.Rows[0].Withdrawal)
	assert.Equal(t, "1000.00", statement.Rows[0].Balance.StringFixed(2))

	assert.Equal(t, "Rent", statement.Rows[1].Description)
	require.NotNil(t, statement.Rows[1].Withdrawal)
	assert.Nil(t, statement.Rows[1].Deposit)
	assert.Equal(t, "600.00", statement.Rows[1].Balance.StringFixed(2))

	assert.Equal(t, "food", statement.Rows[2].Description)
	assert.Equal(t, "550.00", statement.Rows[2].Balance.StringFixed(2))

	assert.True(t, statement.ClosingBalance.Equal(SumTransactions([]*Transaction{later, rent, salary}, nil).NetTotal))
}

func TestCategories(t *testing.T) {
	assert.True(t, IsValidCategory(TransactionTypeExpense, "food"))
	assert.False(t, IsValidCategory(TransactionTypeIncome, "food"))
	assert.True(t, IsValidCategory(TransactionTypeIncome, "salary"))
	assert.True(t, IsValidCategory(TransactionTypeIncome, "other"))
	assert.False(t, IsValidCategory(TransactionType("transfer"), "other"))

	cats := CategoriesFor(TransactionTypeExpense)
	cats[0].Name = "mutated"
	assert.True(t, IsValidCategory(TransactionTypeExpense, "food"))
}
