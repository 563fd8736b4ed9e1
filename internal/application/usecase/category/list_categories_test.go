package category

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

type stubTransactionRepo struct {
	transactions []*entity.Transaction
	lastFilter   entity.TransactionFilter
	calls        int
}

func (s *stubTransactionRepo) Create(context.Context, *entity.Transaction) error { return nil }
func (s *stubTransactionRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}
func (s *stubTransactionRepo) Update(context.Context, *entity.Transaction) error { return nil }
func (s *stubTransactionRepo) Delete(context.Context, uuid.UUID) error           { return nil }

func (s *stubTransactionRepo) FindAll(_ context.Context, f entity.TransactionFilter) ([]*entity.Transaction, error) {
	s.calls++
	s.lastFilter = f
	return s.transactions, nil
}

func TestListCategories_Catalogue(t *testing.T) {
	repo := &stubTransactionRepo{}
	uc := NewListCategoriesUseCase(repo)

	out, err := uc.Execute(context.Background(), ListCategoriesInput{})
	require.NoError(t, err)
	assert.Len(t, out.Categories, len(entity.CategoriesFor(entity.TransactionTypeExpense))+len(entity.CategoriesFor(entity.TransactionTypeIncome)))
	assert.Zero(t, repo.calls, "no statistics without a period")

	income := entity.TransactionTypeIncome
	out, err = uc.Execute(context.Background(), ListCategoriesInput{Type: &income})
	require.NoError(t, err)
	for _, c := range out.Categories {
		assert.Equal(t, entity.TransactionTypeIncome, c.Type)
	}

	bad := entity.TransactionType("transfer")
	_, err = uc.Execute(context.Background(), ListCategoriesInput{Type: &bad})
	assert.Error(t, err)
}

func TestListCategories_Statistics(t *testing.T) {
	now := time.Now()
	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubTransactionRepo{transactions: []*entity.Transaction{
		entity.NewTransaction(entity.TransactionTypeExpense, decimal.NewFromInt(12), "food", "", day, now),
		entity.NewTransaction(entity.TransactionTypeExpense, decimal.NewFromInt(8), "food", "", day, now),
		entity.NewTransaction(entity.TransactionTypeIncome, decimal.NewFromInt(40), "other", "", day, now),
	}}
	start, end := day, day.AddDate(0, 1, -1)

	out, err := NewListCategoriesUseCase(repo).Execute(context.Background(), ListCategoriesInput{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, &start, repo.lastFilter.StartDate)

	for _, c := range out.Categories {
		switch {
		case c.Type == entity.TransactionTypeExpense && c.Name == "food":
			assert.Equal(t, 2, c.TransactionCount)
			assert.Equal(t, "20.00", c.PeriodTotal.StringFixed(2))
		case c.Type == entity.TransactionTypeIncome && c.Name == "other":
			assert.Equal(t, 1, c.TransactionCount)
		case c.Type == entity.TransactionTypeExpense && c.Name == "other":
			assert.Zero(t, c.TransactionCount)
		}
	}
}
