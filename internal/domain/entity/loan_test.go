package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payment(loan *Loan, amount string, t LoanPaymentType) *LoanPayment {
	return NewLoanPayment(loan.ID, dec(amount), t, "", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), time.Now())
}

func TestNewLoan(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("starts from principal", func(t *testing.T) {
		l := NewLoan(LoanDirectionGiven, dec("5000"), nil, "Ana", "", "", decimal.Zero, nil, now)
		assert.True(t, l.RemainingAmount.Equal(dec("5000")))
		assert.True(t, l.OpeningBalance.Equal(dec("5000")))
		assert.Equal(t, LoanStatusActive, l.Status)
		assert.Nil(t, l.CompletedAt)
	})

	t.Run("honours opening balance override", func(t *testing.T) {
		override := dec("1200")
		l := NewLoan(LoanDirectionTaken, dec("5000"), &override, "Bank", "", "", decimal.Zero, nil, now)
		assert.True(t, l.RemainingAmount.Equal(dec("1200")))
		assert.True(t, l.Amount.Equal(dec("5000")))
	})
}

func TestLoan_Reconcile(t *testing.T) {
	now := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	loan := NewLoan(LoanDirectionGiven, dec("5000"), nil, "Ana", "", "", decimal.Zero, nil, now)

	first := payment(loan, "2000", LoanPaymentTypePayment)
	loan.Reconcile([]*LoanPayment{first}, now)
	assert.True(t, loan.RemainingAmount.Equal(dec("3000")))
	assert.Equal(t, LoanStatusActive, loan.Status)

	second := payment(loan, "3000", LoanPaymentTypePayment)
	loan.Reconcile([]*LoanPayment{first, second}, now)
	assert.True(t, loan.RemainingAmount.IsZero())
	assert.Equal(t, LoanStatusCompleted, loan.Status)
	require.NotNil(t, loan.CompletedAt)
	assert.Equal(t, now, *loan.CompletedAt)

	loan.Reconcile([]*LoanPayment{first}, now.Add(time.Hour))
	assert.True(t, loan.RemainingAmount.Equal(dec("3000")))
	assert.Equal(t, LoanStatusActive, loan.Status)
	assert.Nil(t, loan.CompletedAt)
}

func TestLoan_Reconcile_Rules(t *testing.T) {
	now := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		status        LoanStatus
		payments      []string
		interest      []string
		wantRemaining string
		wantStatus    LoanStatus
	}{
		{"interest never reduces remaining", LoanStatusActive, nil, []string{"400"}, "1000", LoanStatusActive},
		{"overpayment floors at zero", LoanStatusActive, []string{"1500"}, nil, "0", LoanStatusCompleted},
		{"defaulted stays defaulted while outstanding", LoanStatusDefaulted, []string{"100"}, nil, "900", LoanStatusDefaulted},
		{"defaulted loan paid in full completes", LoanStatusDefaulted, []string{"1000"}, nil, "0", LoanStatusCompleted},
		{"no payments keeps full balance", LoanStatusActive, nil, nil, "1000", LoanStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := NewLoan(LoanDirectionTaken, dec("1000"), nil, "Bob", "", "", decimal.Zero, nil, now)
			loan.Status = tt.status

			var payments []*LoanPayment
			for _, a := range tt.payments {
				payments = append(payments, payment(loan, a, LoanPaymentTypePayment))
			}
			for _, a := range tt.interest {
				payments = append(payments, payment(loan, a, LoanPaymentTypeInterest))
			}

			loan.Reconcile(payments, now)
			assert.True(t, loan.RemainingAmount.Equal(dec(tt.wantRemaining)), "remaining = %s", loan.RemainingAmount)
			assert.Equal(t, tt.wantStatus, loan.Status)
		})
	}
}

func TestLoan_Reconcile_KeepsOriginalCompletionTime(t *testing.T) {
	first := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	loan := NewLoan(LoanDirectionGiven, dec("100"), nil, "Ana", "", "", decimal.Zero, nil, first)
	payments := []*LoanPayment{payment(loan, "100", LoanPaymentTypePayment)}

	loan.Reconcile(payments, first)
	loan.Reconcile(append(payments, payment(loan, "5", LoanPaymentTypeInterest)), first.Add(48*time.Hour))

	require.NotNil(t, loan.CompletedAt)
	assert.Equal(t, first, *loan.CompletedAt)
}

func TestLoan_ApplyDetails(t *testing.T) {
	now := time.Now()

	t.Run("principal change moves opening balance", func(t *testing.T) {
		loan := NewLoan(LoanDirectionGiven, dec("1000"), nil, "Ana", "", "", decimal.Zero, nil, now)
		amount := dec("1500")
		loan.ApplyDetails(LoanDetails{Amount: &amount})
		assert.True(t, loan.OpeningBalance.Equal(dec("1500")))
	})

	t.Run("override survives principal change", func(t *testing.T) {
		override := dec("300")
		loan := NewLoan(LoanDirectionGiven, dec("1000"), &override, "Ana", "", "", decimal.Zero, nil, now)
		amount := dec("1500")
		loan.ApplyDetails(LoanDetails{Amount: &amount})
		assert.True(t, loan.OpeningBalance.Equal(dec("300")))
	})

	t.Run("clears due date", func(t *testing.T) {
		due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		loan := NewLoan(LoanDirectionGiven, dec("1000"), nil, "Ana", "", "", decimal.Zero, &due, now)
		loan.ApplyDetails(LoanDetails{ClearDueDate: true})
		assert.Nil(t, loan.DueDate)
	})
}

func TestLoan_CanTransitionTo(t *testing.T) {
	loan := NewLoan(LoanDirectionGiven, dec("1000"), nil, "Ana", "", "", decimal.Zero, nil, time.Now())

	assert.True(t, loan.CanTransitionTo(LoanStatusDefaulted))
	assert.False(t, loan.CanTransitionTo(LoanStatusCompleted))

	loan.Status = LoanStatusDefaulted
	assert.True(t, loan.CanTransitionTo(LoanStatusActive))

	loan.Status = LoanStatusCompleted
	loan.RemainingAmount = decimal.Zero
	assert.False(t, loan.CanTransitionTo(LoanStatusActive))
	assert.False(t, loan.CanTransitionTo(LoanStatusDefaulted))
}

func TestSummarizeLoans(t *testing.T) {
	now := time.Now()
	given := NewLoan(LoanDirectionGiven, dec("5000"), nil, "Ana", "", "", decimal.Zero, nil, now)
	given.RemainingAmount = dec("3000")
	settled := NewLoan(LoanDirectionGiven, dec("200"), nil, "Carl", "", "", decimal.Zero, nil, now)
	settled.RemainingAmount = decimal.Zero
	settled.Status = LoanStatusCompleted
	taken := NewLoan(LoanDirectionTaken, dec("800"), nil, "Bank", "", "", decimal.Zero, nil, now)
	defaulted := NewLoan(LoanDirectionTaken, dec("100"), nil, "Dan", "", "", decimal.Zero, nil, now)
	defaulted.Status = LoanStatusDefaulted

	s := SummarizeLoans([]*Loan{given, settled, taken, defaulted})

	assert.True(t, s.TotalLoansGiven.Equal(dec("5200")))
	assert.True(t, s.TotalLoansTaken.Equal(dec("900")))
	assert.True(t, s.ActiveLoansGiven.Equal(dec("3000")))
	assert.True(t, s.ActiveLoansTaken.Equal(dec("800")))
	assert.True(t, s.TotalOutstanding.Equal(s.ActiveLoansGiven))
	assert.True(t, s.TotalOwed.Equal(s.ActiveLoansTaken))
	assert.Equal(t, 2, s.ActiveCount)
	assert.Equal(t, 1, s.CompletedCount)
	assert.Equal(t, 1, s.DefaultedCount)
}
