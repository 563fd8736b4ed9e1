package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

var testNow = time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

func mustDate(s string) time.Time {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed(t *testing.T, repo *memoryTransactionRepo, typ entity.TransactionType, amt, category, date string) *TransactionOutput {
	t.Helper()
	uc := NewCreateTransactionUseCase(repo, fixedClock{testNow})
	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		Type:     typ,
		Amount:   amount(amt),
		Category: category,
		Date:     mustDate(date),
	})
	require.NoError(t, err)
	return out.Transaction
}

func txnCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr), "expected TransactionError, got %v", err)
	return txnErr.Code
}

func TestCreateTransaction(t *testing.T) {
	repo := newMemoryTransactionRepo()
	uc := NewCreateTransactionUseCase(repo, fixedClock{testNow})

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		Type:        entity.TransactionTypeExpense,
		Amount:      amount("50"),
		Category:    "food",
		Description: "Groceries",
		Date:        mustDate("2025-09-01"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, out.Transaction.ID)
	assert.Equal(t, testNow, out.Transaction.CreatedAt)

	list, err := NewListTransactionsUseCase(repo).Execute(context.Background(), ListTransactionsInput{})
	require.NoError(t, err)
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, out.Transaction, list.Transactions[0])
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateTransactionInput
		wantCode domainerror.TransactionErrorCode
	}{
		{
			name:     "invalid type",
			input:    CreateTransactionInput{Type: "transfer", Amount: amount("1"), Category: "food", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:     "zero amount",
			input:    CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: decimal.Zero, Category: "food", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "negative amount",
			input:    CreateTransactionInput{Type: entity.TransactionTypeIncome, Amount: amount("-5"), Category: "salary", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "sub-cent amount",
			input:    CreateTransactionInput{Type: entity.TransactionTypeIncome, Amount: amount("0.004"), Category: "salary", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "amount beyond column precision",
			input:    CreateTransactionInput{Type: entity.TransactionTypeIncome, Amount: amount("10000000000000"), Category: "salary", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "missing category",
			input:    CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: amount("1"), Category: "  ", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeMissingTransactionFields,
		},
		{
			name:     "category of other type",
			input:    CreateTransactionInput{Type: entity.TransactionTypeIncome, Amount: amount("1"), Category: "food", Date: mustDate("2025-09-01")},
			wantCode: domainerror.ErrCodeInvalidCategory,
		},
		{
			name:     "missing date",
			input:    CreateTransactionInput{Type: entity.TransactionTypeExpense, Amount: amount("1"), Category: "food"},
			wantCode: domainerror.ErrCodeInvalidTransactionDate,
		},
		{
			name: "description too long",
			input: CreateTransactionInput{
				Type: entity.TransactionTypeExpense, Amount: amount("1"), Category: "food",
				Description: strings.Repeat("x", entity.MaxDescriptionLength+1), Date: mustDate("2025-09-01"),
			},
			wantCode: domainerror.ErrCodeDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryTransactionRepo()
			_, err := NewCreateTransactionUseCase(repo, fixedClock{testNow}).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, txnCode(t, err))
			assert.Empty(t, repo.items)
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	repo := newMemoryTransactionRepo()
	created := seed(t, repo, entity.TransactionTypeExpense, "50", "food", "2025-09-01")
	uc := NewUpdateTransactionUseCase(repo, fixedClock{testNow.Add(time.Hour)})

	t.Run("partial merge", func(t *testing.T) {
		desc := "Dinner"
		newAmount := amount("75.25")
		out, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: created.ID,
			Description:   &desc,
			Amount:        &newAmount,
		})
		require.NoError(t, err)
		assert.Equal(t, "Dinner", out.Transaction.Description)
		assert.Equal(t, "75.25", out.Transaction.Amount.StringFixed(2))
		assert.Equal(t, "food", out.Transaction.Category)
		assert.Equal(t, created.CreatedAt, out.Transaction.CreatedAt)
	})

	t.Run("type change requires matching category", func(t *testing.T) {
		income := entity.TransactionTypeIncome
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: created.ID, Type: &income})
		require.Error(t, err)
		assert.Equal(t, domainerror.ErrCodeInvalidCategory, txnCode(t, err))

		stored, _ := repo.FindByID(context.Background(), created.ID)
		assert.Equal(t, entity.TransactionTypeExpense, stored.Type)
	})

	t.Run("type and category together", func(t *testing.T) {
		income := entity.TransactionTypeIncome
		category := "gift"
		out, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: created.ID, Type: &income, Category: &category})
		require.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeIncome, out.Transaction.Type)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{TransactionID: uuid.New()})
		require.Error(t, err)
		assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
	})
}

func TestDeleteTransaction_Twice(t *testing.T) {
	repo := newMemoryTransactionRepo()
	created := seed(t, repo, entity.TransactionTypeExpense, "10", "food", "2025-09-01")
	uc := NewDeleteTransactionUseCase(repo)

	out, err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID})
	require.NoError(t, err)
	assert.True(t, out.Success)

	_, err = uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.ID})
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
	assert.Empty(t, repo.items)
}

func TestListTransactions_Filters(t *testing.T) {
	repo := newMemoryTransactionRepo()
	seed(t, repo, entity.TransactionTypeExpense, "10", "food", "2025-08-30")
	seed(t, repo, entity.TransactionTypeIncome, "100", "salary", "2025-09-01")
	seed(t, repo, entity.TransactionTypeExpense, "20", "travel", "2025-09-10")
	uc := NewListTransactionsUseCase(repo)

	expense := entity.TransactionTypeExpense
	out, err := uc.Execute(context.Background(), ListTransactionsInput{Type: &expense})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, "travel", out.Transactions[0].Category)

	start, end := mustDate("2025-09-01"), mustDate("2025-09-10")
	out, err = uc.Execute(context.Background(), ListTransactionsInput{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 2)

	_, err = uc.Execute(context.Background(), ListTransactionsInput{StartDate: &end, EndDate: &start})
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeInvalidDateRange, txnCode(t, err))
}

func TestGetBalance(t *testing.T) {
	repo := newMemoryTransactionRepo()
	seed(t, repo, entity.TransactionTypeExpense, "50", "food", "2025-09-01")
	seed(t, repo, entity.TransactionTypeIncome, "1000", "salary", "2025-09-01")

	out, err := NewGetBalanceUseCase(repo).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "950.00", out.CurrentBalance.StringFixed(2))
}

func TestGetBalance_RepositoryFailure(t *testing.T) {
	repo := newMemoryTransactionRepo()
	repo.findErr = errors.New("connection refused")

	_, err := NewGetBalanceUseCase(repo).Execute(context.Background())
	require.Error(t, err)
}

func TestGetSummary(t *testing.T) {
	repo := newMemoryTransactionRepo()
	seed(t, repo, entity.TransactionTypeIncome, "1000", "salary", "2025-08-05")
	seed(t, repo, entity.TransactionTypeExpense, "200", "food", "2025-08-20")
	seed(t, repo, entity.TransactionTypeIncome, "1500", "salary", "2025-09-05")
	seed(t, repo, entity.TransactionTypeIncome, "300", "gift", "2025-07-05")

	out, err := NewGetSummaryUseCase(repo, fixedClock{testNow}).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-09", out.Month)
	assert.Equal(t, "2025-08", out.PreviousMonth)
	assert.Equal(t, "2600.00", out.CurrentBalance.StringFixed(2))
	assert.Equal(t, "1500.00", out.MonthlyIncome.StringFixed(2))
	assert.True(t, out.MonthlyExpenses.IsZero())
	assert.Equal(t, "1000.00", out.PreviousMonthIncome.StringFixed(2))
	assert.Equal(t, "200.00", out.PreviousMonthExpenses.StringFixed(2))

	label, ok := out.IncomeTrend.Label()
	assert.True(t, ok)
	assert.Equal(t, "50.00", label)

	label, ok = out.ExpenseTrend.Label()
	assert.True(t, ok)
	assert.Equal(t, "-100.00", label)
	assert.Equal(t, 4, out.TransactionCount)
}

func TestExportStatement(t *testing.T) {
	repo := newMemoryTransactionRepo()
	seed(t, repo, entity.TransactionTypeExpense, "50", "food", "2025-09-02")
	seed(t, repo, entity.TransactionTypeIncome, "1000", "salary", "2025-09-01")
	exporter := NewExportStatementUseCase(repo, fixedClock{testNow}, lineWriter{})

	out, err := exporter.Execute(context.Background(), ExportStatementInput{Format: "txt"})
	require.NoError(t, err)
	assert.Equal(t, "salary=1000.00\nfood=950.00", string(out.Content))
	assert.Equal(t, "transactions-2025-09-15.txt", out.FileName)
	assert.Equal(t, 2, out.RowCount)

	_, err = exporter.Execute(context.Background(), ExportStatementInput{Format: "pdf"})
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeUnsupportedExport, txnCode(t, err))
}

func TestExportLinks(t *testing.T) {
	repo := newMemoryTransactionRepo()
	seed(t, repo, entity.TransactionTypeIncome, "10", "gift", "2025-09-01")
	exporter := NewExportStatementUseCase(repo, fixedClock{testNow}, lineWriter{})
	links := &stubLinks{}

	link, err := NewCreateExportLinkUseCase(links, exporter).Execute(context.Background(), CreateExportLinkInput{DeviceID: "D1", Format: "txt"})
	require.NoError(t, err)
	assert.Equal(t, "signed:txt", link.Token)
	require.Len(t, links.issued, 1)
	assert.Equal(t, "D1", links.issued[0].DeviceID)

	download := NewDownloadExportUseCase(links, activeDevices{"D1": true}, exporter)
	out, err := download.Execute(context.Background(), DownloadExportInput{Token: link.Token})
	require.NoError(t, err)
	assert.Equal(t, "gift=10.00", string(out.Content))

	_, err = download.Execute(context.Background(), DownloadExportInput{Token: "forged"})
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeInvalidExportLink, txnCode(t, err))

	_, err = NewCreateExportLinkUseCase(links, exporter).Execute(context.Background(), CreateExportLinkInput{Format: "pdf"})
	require.Error(t, err)
}

func TestDownloadExport_RevokedDevice(t *testing.T) {
	repo := newMemoryTransactionRepo()
	seed(t, repo, entity.TransactionTypeIncome, "10", "gift", "2025-09-01")
	exporter := NewExportStatementUseCase(repo, fixedClock{testNow}, lineWriter{})
	links := &stubLinks{}
	devices := activeDevices{"D1": true}

	link, err := NewCreateExportLinkUseCase(links, exporter).Execute(context.Background(), CreateExportLinkInput{DeviceID: "D1", Format: "txt"})
	require.NoError(t, err)

	download := NewDownloadExportUseCase(links, devices, exporter)
	_, err = download.Execute(context.Background(), DownloadExportInput{Token: link.Token})
	require.NoError(t, err)

	devices["D1"] = false
	_, err = download.Execute(context.Background(), DownloadExportInput{Token: link.Token})
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeInvalidExportLink, txnCode(t, err))
}
