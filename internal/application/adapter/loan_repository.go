package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LoanRepository defines the interface for loan and loan payment persistence.
//
// Every method that changes payments or the principal reconciles the loan
// from its complete payment set inside the same database transaction, so the
// stored remaining amount and status never diverge from payment history.
type LoanRepository interface {
	// Create creates a new loan in the database.
	Create(ctx context.Context, loan *entity.Loan) error

	// FindByID retrieves a loan by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error)

	// FindAll retrieves the loans matching filter, newest first.
	FindAll(ctx context.Context, filter entity.LoanFilter) ([]*entity.Loan, error)

	// UpdateDetails merges details into the loan and reconciles it.
	UpdateDetails(ctx context.Context, id uuid.UUID, details entity.LoanDetails, now time.Time) (*entity.Loan, error)

	// UpdateStatus sets a manual status after checking the transition is allowed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LoanStatus, now time.Time) (*entity.Loan, error)

	// Delete removes the loan and all of its payments.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindPayments retrieves the payments of a loan ordered by payment date.
	FindPayments(ctx context.Context, loanID uuid.UUID) ([]*entity.LoanPayment, error)

	// AddPayment records a payment and returns the reconciled loan.
	AddPayment(ctx context.Context, payment *entity.LoanPayment, now time.Time) (*entity.Loan, error)

	// DeletePayment removes a payment and returns the reconciled loan.
	DeletePayment(ctx context.Context, paymentID uuid.UUID, now time.Time) (*entity.Loan, error)
}
