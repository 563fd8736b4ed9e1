package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanDirection tells whether money was lent out or borrowed.
type LoanDirection string

const (
	LoanDirectionGiven LoanDirection = "given"
	LoanDirectionTaken LoanDirection = "taken"
)

// IsValid reports whether the direction is given or taken.
func (d LoanDirection) IsValid() bool {
	return d == LoanDirectionGiven || d == LoanDirectionTaken
}

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// IsValid reports whether the status is one of the known states.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusCompleted, LoanStatusDefaulted:
		return true
	}
	return false
}

// Loan is a peer-to-peer loan tracked by the ledger.
//
// RemainingAmount and Status are derived from OpeningBalance and the loan's
// payments by Reconcile. Nothing else writes them.
type Loan struct {
	ID                  uuid.UUID
	Direction           LoanDirection
	Amount              decimal.Decimal
	OpeningBalance      decimal.Decimal
	RemainingAmount     decimal.Decimal
	CounterpartyName    string
	CounterpartyContact string
	Description         string
	InterestRate        decimal.Decimal
	DueDate             *time.Time
	Status              LoanStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
}

// NewLoan creates an active loan. When openingBalance is nil the loan
// starts from its full principal.
func NewLoan(
	direction LoanDirection,
	amount decimal.Decimal,
	openingBalance *decimal.Decimal,
	counterpartyName string,
	counterpartyContact string,
	description string,
	interestRate decimal.Decimal,
	dueDate *time.Time,
	now time.Time,
) *Loan {
	opening := amount
	if openingBalance != nil {
		opening = *openingBalance
	}

	return &Loan{
		ID:                  uuid.New(),
		Direction:           direction,
		Amount:              amount,
		OpeningBalance:      opening,
		RemainingAmount:     opening,
		CounterpartyName:    counterpartyName,
		CounterpartyContact: counterpartyContact,
		Description:         description,
		InterestRate:        interestRate,
		DueDate:             dueDate,
		Status:              LoanStatusActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// PrincipalPaid sums the payment-kind amounts. Interest is ignored.
func PrincipalPaid(payments []*LoanPayment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		if p.Type == LoanPaymentTypePayment {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// Reconcile recomputes RemainingAmount from the full payment set and applies
// the status transitions: a settled loan is completed, a completed loan with
// money outstanding is active again, and a defaulted loan stays defaulted.
func (l *Loan) Reconcile(payments []*LoanPayment, now time.Time) {
	remaining := l.OpeningBalance.Sub(PrincipalPaid(payments))
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	l.RemainingAmount = remaining

	if remaining.IsZero() {
		if l.Status != LoanStatusCompleted || l.CompletedAt == nil {
			completedAt := now
			l.CompletedAt = &completedAt
		}
		l.Status = LoanStatusCompleted
	} else if l.Status == LoanStatusCompleted {
		l.Status = LoanStatusActive
		l.CompletedAt = nil
	}

	l.UpdatedAt = now
}

// LoanDetails holds the loan fields that may be edited directly.
// Nil fields are left untouched. It deliberately has no remaining amount
// or status: those only change through payments and status transitions.
type LoanDetails struct {
	Direction           *LoanDirection
	Amount              *decimal.Decimal
	CounterpartyName    *string
	CounterpartyContact *string
	Description         *string
	InterestRate        *decimal.Decimal
	DueDate             *time.Time
	ClearDueDate        bool
}

// ApplyDetails merges details into the loan. When the principal changes and
// the loan had started from its full principal, the opening balance follows.
func (l *Loan) ApplyDetails(d LoanDetails) {
	if d.Direction != nil {
		l.Direction = *d.Direction
	}
	if d.Amount != nil {
		if l.OpeningBalance.Equal(l.Amount) {
			l.OpeningBalance = *d.Amount
		}
		l.Amount = *d.Amount
	}
	if d.CounterpartyName != nil {
		l.CounterpartyName = *d.CounterpartyName
	}
	if d.CounterpartyContact != nil {
		l.CounterpartyContact = *d.CounterpartyContact
	}
	if d.Description != nil {
		l.Description = *d.Description
	}
	if d.InterestRate != nil {
		l.InterestRate = *d.InterestRate
	}
	if d.ClearDueDate {
		l.DueDate = nil
	} else if d.DueDate != nil {
		l.DueDate = d.DueDate
	}
}

// CanTransitionTo reports whether a manual status change is allowed.
// Completed is derived and never set by hand.
func (l *Loan) CanTransitionTo(status LoanStatus) bool {
	switch status {
	case LoanStatusDefaulted:
		return l.Status == LoanStatusActive || l.Status == LoanStatusDefaulted
	case LoanStatusActive:
		return (l.Status == LoanStatusDefaulted || l.Status == LoanStatusActive) && l.RemainingAmount.IsPositive()
	}
	return false
}

// LoanFilter defines filter options for listing loans.
type LoanFilter struct {
	Direction *LoanDirection
	Status    *LoanStatus
}

// LoanSummary aggregates all loans.
type LoanSummary struct {
	TotalLoansGiven  decimal.Decimal
	TotalLoansTaken  decimal.Decimal
	ActiveLoansGiven decimal.Decimal
	ActiveLoansTaken decimal.Decimal
	TotalOutstanding decimal.Decimal
	TotalOwed        decimal.Decimal
	ActiveCount      int
	CompletedCount   int
	DefaultedCount   int
}

// SummarizeLoans computes the loan summary. Only active loans contribute to
// the outstanding and owed figures.
func SummarizeLoans(loans []*Loan) LoanSummary {
	s := LoanSummary{
		TotalLoansGiven:  decimal.Zero,
		TotalLoansTaken:  decimal.Zero,
		ActiveLoansGiven: decimal.Zero,
		ActiveLoansTaken: decimal.Zero,
	}

	for _, l := range loans {
		switch l.Direction {
		case LoanDirectionGiven:
			s.TotalLoansGiven = s.TotalLoansGiven.Add(l.Amount)
			if l.Status == LoanStatusActive {
				s.ActiveLoansGiven = s.ActiveLoansGiven.Add(l.RemainingAmount)
			}
		case LoanDirectionTaken:
			s.TotalLoansTaken = s.TotalLoansTaken.Add(l.Amount)
			if l.Status == LoanStatusActive {
				s.ActiveLoansTaken = s.ActiveLoansTaken.Add(l.RemainingAmount)
			}
		}

		switch l.Status {
		case LoanStatusActive:
			s.ActiveCount++
		case LoanStatusCompleted:
			s.CompletedCount++
		case LoanStatusDefaulted:
			s.DefaultedCount++
		}
	}

	s.TotalOutstanding = s.ActiveLoansGiven
	s.TotalOwed = s.ActiveLoansTaken
	return s
}
