package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListPaymentsUseCase lists the payments of one loan.
type ListPaymentsUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(loanRepo adapter.LoanRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{loanRepo: loanRepo}
}

// Execute lists the payments. A missing loan is reported as not found.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, loanID uuid.UUID) ([]*PaymentOutput, error) {
	if _, err := uc.loanRepo.FindByID(ctx, loanID); err != nil {
		return nil, mapLookupError(err, "find loan")
	}

	payments, err := uc.loanRepo.FindPayments(ctx, loanID)
	if err != nil {
		return nil, mapLookupError(err, "list loan payments")
	}

	out := make([]*PaymentOutput, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentOutput(p))
	}
	return out, nil
}

// AddPaymentInput represents the input for recording a loan payment.
type AddPaymentInput struct {
	LoanID      uuid.UUID
	Amount      decimal.Decimal
	Type        entity.LoanPaymentType
	Description string
	PaymentDate *time.Time
}

// PaymentResultOutput holds a payment and the loan after reconciliation.
type PaymentResultOutput struct {
	Payment *PaymentOutput
	Loan    *LoanOutput
}

// AddPaymentUseCase records a payment and reconciles its loan.
type AddPaymentUseCase struct {
	loanRepo adapter.LoanRepository
	clock    adapter.Clock
}

// NewAddPaymentUseCase creates a new AddPaymentUseCase instance.
func NewAddPaymentUseCase(loanRepo adapter.LoanRepository, clock adapter.Clock) *AddPaymentUseCase {
	return &AddPaymentUseCase{
		loanRepo: loanRepo,
		clock:    clock,
	}
}

// Execute records the payment.
func (uc *AddPaymentUseCase) Execute(ctx context.Context, input AddPaymentInput) (*PaymentResultOutput, error) {
	if !entity.IsMoneyAmount(input.Amount) {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be greater than zero with at most 2 decimal places",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if input.Type == "" {
		input.Type = entity.LoanPaymentTypePayment
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidPaymentType,
			"payment_type must be 'payment' or 'interest'",
			domainerror.ErrInvalidPaymentType,
		)
	}

	now := uc.clock.Now().UTC()
	paymentDate := now.Truncate(24 * time.Hour)
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := entity.NewLoanPayment(input.LoanID, input.Amount, input.Type, input.Description, paymentDate, now)

	loan, err := uc.loanRepo.AddPayment(ctx, payment, now)
	if err != nil {
		return nil, mapLookupError(err, "record loan payment")
	}

	slog.Info("Loan payment recorded",
		"loan_id", loan.ID,
		"payment_id", payment.ID,
		"type", payment.Type,
		"remaining", loan.RemainingAmount.StringFixed(2),
		"status", loan.Status,
	)

	return &PaymentResultOutput{
		Payment: toPaymentOutput(payment),
		Loan:    toLoanOutput(loan),
	}, nil
}

// DeletePaymentUseCase removes a payment and reconciles its loan.
type DeletePaymentUseCase struct {
	loanRepo adapter.LoanRepository
	clock    adapter.Clock
}

// NewDeletePaymentUseCase creates a new DeletePaymentUseCase instance.
func NewDeletePaymentUseCase(loanRepo adapter.LoanRepository, clock adapter.Clock) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		loanRepo: loanRepo,
		clock:    clock,
	}
}

// Execute deletes the payment and returns the reconciled loan.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, paymentID uuid.UUID) (*LoanOutput, error) {
	loan, err := uc.loanRepo.DeletePayment(ctx, paymentID, uc.clock.Now().UTC())
	if err != nil {
		return nil, mapLookupError(err, "delete loan payment")
	}

	slog.Info("Loan payment deleted",
		"loan_id", loan.ID,
		"payment_id", paymentID,
		"remaining", loan.RemainingAmount.StringFixed(2),
		"status", loan.Status,
	)

	return toLoanOutput(loan), nil
}
