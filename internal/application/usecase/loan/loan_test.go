package loan

import (
	"context"
	"errors"
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

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// memoryLoanRepo mirrors the persistence contract: every payment change
// reconciles the loan from its full payment set.
type memoryLoanRepo struct {
	loans    map[uuid.UUID]*entity.Loan
	payments map[uuid.UUID]*entity.LoanPayment
}

func newMemoryLoanRepo() *memoryLoanRepo {
	return &memoryLoanRepo{
		loans:    map[uuid.UUID]*entity.Loan{},
		payments: map[uuid.UUID]*entity.LoanPayment{},
	}
}

func (r *memoryLoanRepo) Create(_ context.Context, l *entity.Loan) error {
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *memoryLoanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domainerror.ErrLoanNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memoryLoanRepo) FindAll(_ context.Context, f entity.LoanFilter) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for _, l := range r.loans {
		if f.Direction != nil && l.Direction != *f.Direction {
			continue
		}
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryLoanRepo) reconcile(l *entity.Loan, now time.Time) {
	var ps []*entity.LoanPayment
	for _, p := range r.payments {
		if p.LoanID == l.ID {
			ps = append(ps, p)
		}
	}
	l.Reconcile(ps, now)
}

func (r *memoryLoanRepo) UpdateDetails(_ context.Context, id uuid.UUID, d entity.LoanDetails, now time.Time) (*entity.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domainerror.ErrLoanNotFound
	}
	l.ApplyDetails(d)
	r.reconcile(l, now)
	cp := *l
	return &cp, nil
}

func (r *memoryLoanRepo) UpdateStatus(_ context.Context, id uuid.UUID, s entity.LoanStatus, now time.Time) (*entity.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domainerror.ErrLoanNotFound
	}
	if !l.CanTransitionTo(s) {
		return nil, domainerror.ErrInvalidStatusTransition
	}
	l.Status = s
	l.UpdatedAt = now
	cp := *l
	return &cp, nil
}

func (r *memoryLoanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.loans[id]; !ok {
		return domainerror.ErrLoanNotFound
	}
	for pid, p := range r.payments {
		if p.LoanID == id {
			delete(r.payments, pid)
		}
	}
	delete(r.loans, id)
	return nil
}

func (r *memoryLoanRepo) FindPayments(_ context.Context, loanID uuid.UUID) ([]*entity.LoanPayment, error) {
	var out []*entity.LoanPayment
	for _, p := range r.payments {
		if p.LoanID == loanID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryLoanRepo) AddPayment(_ context.Context, p *entity.LoanPayment, now time.Time) (*entity.Loan, error) {
	l, ok := r.loans[p.LoanID]
	if !ok {
		return nil, domainerror.ErrLoanNotFound
	}
	cp := *p
	r.payments[p.ID] = &cp
	r.reconcile(l, now)
	out := *l
	return &out, nil
}

func (r *memoryLoanRepo) DeletePayment(_ context.Context, id uuid.UUID, now time.Time) (*entity.Loan, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domainerror.ErrLoanPaymentNotFound
	}
	delete(r.payments, id)
	l := r.loans[p.LoanID]
	r.reconcile(l, now)
	out := *l
	return &out, nil
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func loanCode(t *testing.T, err error) domainerror.LoanErrorCode {
	t.Helper()
	var loanErr *domainerror.LoanError
	require.True(t, errors.As(err, &loanErr), "expected LoanError, got %v", err)
	return loanErr.Code
}

func createLoan(t *testing.T, repo *memoryLoanRepo, direction entity.LoanDirection, principal string) *LoanOutput {
	t.Helper()
	out, err := NewCreateLoanUseCase(repo, fixedClock{testNow}).Execute(context.Background(), CreateLoanInput{
		Direction:        direction,
		Amount:           amount(principal),
		CounterpartyName: "Ana",
		InterestRate:     decimal.Zero,
	})
	require.NoError(t, err)
	return out.Loan
}

func TestCreateLoan_Validation(t *testing.T) {
	negative := amount("-1")
	subCent := amount("0.001")
	tests := []struct {
		name     string
		input    CreateLoanInput
		wantCode domainerror.LoanErrorCode
	}{
		{"invalid direction", CreateLoanInput{Direction: "lent", Amount: amount("1"), CounterpartyName: "A"}, domainerror.ErrCodeInvalidLoanDirection},
		{"zero principal", CreateLoanInput{Direction: entity.LoanDirectionGiven, Amount: decimal.Zero, CounterpartyName: "A"}, domainerror.ErrCodeInvalidLoanAmount},
		{"sub-cent principal", CreateLoanInput{Direction: entity.LoanDirectionGiven, Amount: amount("100.005"), CounterpartyName: "A"}, domainerror.ErrCodeInvalidLoanAmount},
		{"blank counterparty", CreateLoanInput{Direction: entity.LoanDirectionGiven, Amount: amount("1"), CounterpartyName: " "}, domainerror.ErrCodeMissingCounterparty},
		{"negative rate", CreateLoanInput{Direction: entity.LoanDirectionGiven, Amount: amount("1"), CounterpartyName: "A", InterestRate: amount("-0.5")}, domainerror.ErrCodeInvalidInterestRate},
		{"non-positive override", CreateLoanInput{Direction: entity.LoanDirectionGiven, Amount: amount("1"), CounterpartyName: "A", RemainingAmount: &negative}, domainerror.ErrCodeInvalidOpeningBalance},
		{"sub-cent override", CreateLoanInput{Direction: entity.LoanDirectionGiven, Amount: amount("1"), CounterpartyName: "A", RemainingAmount: &subCent}, domainerror.ErrCodeInvalidOpeningBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryLoanRepo()
			_, err := NewCreateLoanUseCase(repo, fixedClock{testNow}).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, loanCode(t, err))
			assert.Empty(t, repo.loans)
		})
	}
}

func TestPaymentReconciliationScenario(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLoanRepo()
	loan := createLoan(t, repo, entity.LoanDirectionGiven, "5000")
	add := NewAddPaymentUseCase(repo, fixedClock{testNow})

	first, err := add.Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("2000"), Type: entity.LoanPaymentTypePayment})
	require.NoError(t, err)
	assert.Equal(t, "3000.00", first.Loan.RemainingAmount.StringFixed(2))
	assert.Equal(t, entity.LoanStatusActive, first.Loan.Status)

	second, err := add.Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("3000")})
	require.NoError(t, err)
	assert.True(t, second.Loan.RemainingAmount.IsZero())
	assert.Equal(t, entity.LoanStatusCompleted, second.Loan.Status)
	assert.NotNil(t, second.Loan.CompletedAt)

	reverted, err := NewDeletePaymentUseCase(repo, fixedClock{testNow}).Execute(ctx, second.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", reverted.RemainingAmount.StringFixed(2))
	assert.Equal(t, entity.LoanStatusActive, reverted.Status)
	assert.Nil(t, reverted.CompletedAt)
}

func TestAddPayment_InterestAndValidation(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLoanRepo()
	loan := createLoan(t, repo, entity.LoanDirectionTaken, "1000")
	add := NewAddPaymentUseCase(repo, fixedClock{testNow})

	out, err := add.Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("50"), Type: entity.LoanPaymentTypeInterest})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", out.Loan.RemainingAmount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), out.Payment.PaymentDate)

	_, err = add.Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: decimal.Zero})
	assert.Equal(t, domainerror.ErrCodeInvalidPaymentAmount, loanCode(t, err))

	_, err = add.Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("0.004")})
	assert.Equal(t, domainerror.ErrCodeInvalidPaymentAmount, loanCode(t, err))
	assert.Len(t, repo.payments, 1, "rejected payments are not stored")

	_, err = add.Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("1"), Type: "fee"})
	assert.Equal(t, domainerror.ErrCodeInvalidPaymentType, loanCode(t, err))

	_, err = add.Execute(ctx, AddPaymentInput{LoanID: uuid.New(), Amount: amount("1")})
	assert.Equal(t, domainerror.ErrCodeLoanNotFound, loanCode(t, err))

	_, err = NewDeletePaymentUseCase(repo, fixedClock{testNow}).Execute(ctx, uuid.New())
	assert.Equal(t, domainerror.ErrCodeLoanPaymentNotFound, loanCode(t, err))
}

func TestUpdateLoan_PrincipalChangeReconciles(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLoanRepo()
	loan := createLoan(t, repo, entity.LoanDirectionGiven, "1000")
	_, err := NewAddPaymentUseCase(repo, fixedClock{testNow}).Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("400")})
	require.NoError(t, err)

	principal := amount("400")
	out, err := NewUpdateLoanUseCase(repo, fixedClock{testNow}).Execute(ctx, UpdateLoanInput{
		LoanID:  loan.ID,
		Details: entity.LoanDetails{Amount: &principal},
	})
	require.NoError(t, err)
	assert.True(t, out.Loan.RemainingAmount.IsZero())
	assert.Equal(t, entity.LoanStatusCompleted, out.Loan.Status)

	blank := "  "
	_, err = NewUpdateLoanUseCase(repo, fixedClock{testNow}).Execute(ctx, UpdateLoanInput{
		LoanID:  loan.ID,
		Details: entity.LoanDetails{CounterpartyName: &blank},
	})
	assert.Equal(t, domainerror.ErrCodeMissingCounterparty, loanCode(t, err))

	subCent := amount("399.999")
	_, err = NewUpdateLoanUseCase(repo, fixedClock{testNow}).Execute(ctx, UpdateLoanInput{
		LoanID:  loan.ID,
		Details: entity.LoanDetails{Amount: &subCent},
	})
	assert.Equal(t, domainerror.ErrCodeInvalidLoanAmount, loanCode(t, err))
}

func TestChangeLoanStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLoanRepo()
	loan := createLoan(t, repo, entity.LoanDirectionGiven, "1000")
	uc := NewChangeLoanStatusUseCase(repo, fixedClock{testNow})

	out, err := uc.Execute(ctx, ChangeLoanStatusInput{LoanID: loan.ID, Status: entity.LoanStatusDefaulted})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusDefaulted, out.Loan.Status)

	_, err = uc.Execute(ctx, ChangeLoanStatusInput{LoanID: loan.ID, Status: entity.LoanStatusCompleted})
	assert.Equal(t, domainerror.ErrCodeInvalidStatusTransition, loanCode(t, err))

	_, err = uc.Execute(ctx, ChangeLoanStatusInput{LoanID: loan.ID, Status: "paused"})
	assert.Equal(t, domainerror.ErrCodeInvalidLoanStatus, loanCode(t, err))

	out, err = uc.Execute(ctx, ChangeLoanStatusInput{LoanID: loan.ID, Status: entity.LoanStatusActive})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusActive, out.Loan.Status)
}

func TestDeleteLoan_CascadesPayments(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLoanRepo()
	loan := createLoan(t, repo, entity.LoanDirectionGiven, "1000")
	_, err := NewAddPaymentUseCase(repo, fixedClock{testNow}).Execute(ctx, AddPaymentInput{LoanID: loan.ID, Amount: amount("100")})
	require.NoError(t, err)

	require.NoError(t, NewDeleteLoanUseCase(repo).Execute(ctx, loan.ID))
	assert.Empty(t, repo.loans)
	assert.Empty(t, repo.payments)

	err = NewDeleteLoanUseCase(repo).Execute(ctx, loan.ID)
	assert.Equal(t, domainerror.ErrCodeLoanNotFound, loanCode(t, err))

	_, err = NewListPaymentsUseCase(repo).Execute(ctx, loan.ID)
	assert.Equal(t, domainerror.ErrCodeLoanNotFound, loanCode(t, err))
}

func TestListLoansAndSummary(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLoanRepo()
	given := createLoan(t, repo, entity.LoanDirectionGiven, "5000")
	createLoan(t, repo, entity.LoanDirectionTaken, "800")
	_, err := NewAddPaymentUseCase(repo, fixedClock{testNow}).Execute(ctx, AddPaymentInput{LoanID: given.ID, Amount: amount("2000")})
	require.NoError(t, err)

	direction := entity.LoanDirectionGiven
	list, err := NewListLoansUseCase(repo).Execute(ctx, ListLoansInput{Direction: &direction})
	require.NoError(t, err)
	require.Len(t, list.Loans, 1)
	assert.Equal(t, given.ID, list.Loans[0].ID)

	bad := entity.LoanStatus("closed")
	_, err = NewListLoansUseCase(repo).Execute(ctx, ListLoansInput{Status: &bad})
	assert.Equal(t, domainerror.ErrCodeInvalidLoanStatus, loanCode(t, err))

	summary, err := NewGetLoanSummaryUseCase(repo).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5000.00", summary.TotalLoansGiven.StringFixed(2))
	assert.Equal(t, "3000.00", summary.TotalOutstanding.StringFixed(2))
	assert.Equal(t, "800.00", summary.TotalOwed.StringFixed(2))

	detail, err := NewGetLoanUseCase(repo).Execute(ctx, given.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Payments, 1)
}
