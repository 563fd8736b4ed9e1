package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	now := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)

	older := entity.NewTransaction(entity.TransactionTypeIncome, decimal.NewFromInt(1000), "salary", "Pay", day(2025, 8, 28), now)
	newer := entity.NewTransaction(entity.TransactionTypeExpense, decimal.RequireFromString("42.50"), "food", "Lunch", day(2025, 9, 2), now)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.FindAll(ctx, entity.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest date first")
	assert.Equal(t, "42.50", all[0].Amount.StringFixed(2))

	expense := entity.TransactionTypeExpense
	filtered, err := repo.FindAll(ctx, entity.TransactionFilter{Type: &expense})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	start, end := day(2025, 9, 1), day(2025, 9, 30)
	inRange, err := repo.FindAll(ctx, entity.TransactionFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, newer.ID, inRange[0].ID)

	newer.Description = "Dinner"
	newer.Amount = decimal.NewFromInt(60)
	require.NoError(t, repo.Update(ctx, newer))
	got, err := repo.FindByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Description)
	assert.Equal(t, "60.00", got.Amount.StringFixed(2))
	assert.Equal(t, "2025-09-02", got.DateString())

	require.NoError(t, repo.Delete(ctx, newer.ID))
	_, err = repo.FindByID(ctx, newer.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, newer.ID), domainerror.ErrTransactionNotFound)

	missing := *older
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, &missing), domainerror.ErrTransactionNotFound)
}

func TestLoanRepository_PaymentReconciliation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	now := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	loan := entity.NewLoan(entity.LoanDirectionGiven, decimal.NewFromInt(5000), nil, "Ana", "", "", decimal.Zero, nil, now)
	require.NoError(t, repo.Create(ctx, loan))

	first := entity.NewLoanPayment(loan.ID, decimal.NewFromInt(2000), entity.LoanPaymentTypePayment, "", day(2025, 9, 5), now)
	updated, err := repo.AddPayment(ctx, first, now)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", updated.RemainingAmount.StringFixed(2))
	assert.Equal(t, entity.LoanStatusActive, updated.Status)

	interest := entity.NewLoanPayment(loan.ID, decimal.NewFromInt(100), entity.LoanPaymentTypeInterest, "", day(2025, 9, 6), now)
	updated, err = repo.AddPayment(ctx, interest, now)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", updated.RemainingAmount.StringFixed(2), "interest does not reduce principal")

	settle := entity.NewLoanPayment(loan.ID, decimal.NewFromInt(3000), entity.LoanPaymentTypePayment, "", day(2025, 9, 10), now)
	completedAt := now.Add(time.Hour)
	updated, err = repo.AddPayment(ctx, settle, completedAt)
	require.NoError(t, err)
	assert.True(t, updated.RemainingAmount.IsZero())
	assert.Equal(t, entity.LoanStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	updated, err = repo.DeletePayment(ctx, settle.ID, completedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "3000.00", updated.RemainingAmount.StringFixed(2))
	assert.Equal(t, entity.LoanStatusActive, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	stored, err := repo.FindByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", stored.RemainingAmount.StringFixed(2))
	assert.Equal(t, entity.LoanStatusActive, stored.Status)

	payments, err := repo.FindPayments(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, first.ID, payments[0].ID)

	_, err = repo.DeletePayment(ctx, settle.ID, now)
	assert.ErrorIs(t, err, domainerror.ErrLoanPaymentNotFound)

	_, err = repo.AddPayment(ctx, entity.NewLoanPayment(uuid.New(), decimal.NewFromInt(1), entity.LoanPaymentTypePayment, "", now, now), now)
	assert.ErrorIs(t, err, domainerror.ErrLoanNotFound)
}

func TestLoanRepository_DetailsStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	now := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	loan := entity.NewLoan(entity.LoanDirectionTaken, decimal.NewFromInt(1000), nil, "Bank", "", "", decimal.Zero, nil, now)
	require.NoError(t, repo.Create(ctx, loan))
	_, err := repo.AddPayment(ctx, entity.NewLoanPayment(loan.ID, decimal.NewFromInt(400), entity.LoanPaymentTypePayment, "", now, now), now)
	require.NoError(t, err)

	amount := decimal.NewFromInt(1500)
	name := "Credit Union"
	updated, err := repo.UpdateDetails(ctx, loan.ID, entity.LoanDetails{Amount: &amount, CounterpartyName: &name}, now)
	require.NoError(t, err)
	assert.Equal(t, "1100.00", updated.RemainingAmount.StringFixed(2))
	assert.Equal(t, "Credit Union", updated.CounterpartyName)

	updated, err = repo.UpdateStatus(ctx, loan.ID, entity.LoanStatusDefaulted, now)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusDefaulted, updated.Status)

	_, err = repo.UpdateStatus(ctx, loan.ID, entity.LoanStatusCompleted, now)
	assert.ErrorIs(t, err, domainerror.ErrInvalidStatusTransition)

	defaulted := entity.LoanStatusDefaulted
	listed, err := repo.FindAll(ctx, entity.LoanFilter{Status: &defaulted})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, repo.Delete(ctx, loan.ID))
	var orphans int64
	require.NoError(t, db.Model(&model.LoanPaymentModel{}).Where("loan_id = ?", loan.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
	assert.ErrorIs(t, repo.Delete(ctx, loan.ID), domainerror.ErrLoanNotFound)
}

func TestDeviceRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository(newTestDB(t))
	now := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

	stale := entity.NewDeviceToken("dt_a", "laptop", "Laptop", "ua", now.AddDate(0, 0, -120))
	fresh := entity.NewDeviceToken("dt_b", "phone", "Phone", "ua", now)
	second := entity.NewDeviceToken("dt_c", "phone", "Phone", "ua", now.Add(-time.Hour))
	for _, d := range []*entity.DeviceToken{stale, fresh, second} {
		require.NoError(t, repo.Upsert(ctx, d))
	}

	known, err := repo.ExistsByDeviceID(ctx, "phone")
	require.NoError(t, err)
	assert.True(t, known)
	known, err = repo.ExistsByDeviceID(ctx, "tablet")
	require.NoError(t, err)
	assert.False(t, known)

	live, err := repo.HasActiveToken(ctx, "phone")
	require.NoError(t, err)
	assert.True(t, live)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "dt_b", active[0].Token)

	require.NoError(t, repo.TouchLastSeen(ctx, "dt_c", now.Add(time.Minute)))
	got, err := repo.FindByToken(ctx, "dt_c")
	require.NoError(t, err)
	assert.True(t, got.LastSeen.Equal(now.Add(time.Minute)))

	_, err = repo.FindByToken(ctx, "dt_missing")
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	n, err := repo.DeactivateInactiveSince(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	matched, err := repo.DeactivateByDeviceID(ctx, "phone")
	require.NoError(t, err)
	assert.Equal(t, int64(2), matched)

	matched, err = repo.DeactivateByDeviceID(ctx, "phone")
	require.NoError(t, err)
	assert.Equal(t, int64(2), matched, "already revoked records still match")

	live, err = repo.HasActiveToken(ctx, "phone")
	require.NoError(t, err)
	assert.False(t, live)

	active, err = repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
