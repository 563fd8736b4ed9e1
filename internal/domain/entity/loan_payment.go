package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPaymentType distinguishes principal repayments from interest.
type LoanPaymentType string

const (
	// LoanPaymentTypePayment reduces the loan's remaining amount.
	LoanPaymentTypePayment LoanPaymentType = "payment"
	// LoanPaymentTypeInterest is recorded only.
	LoanPaymentTypeInterest LoanPaymentType = "interest"
)

// IsValid reports whether the payment type is payment or interest.
func (t LoanPaymentType) IsValid() bool {
	return t == LoanPaymentTypePayment || t == LoanPaymentTypeInterest
}

// LoanPayment is a single payment recorded against a loan.
type LoanPayment struct {
	ID          uuid.UUID
	LoanID      uuid.UUID
	Amount      decimal.Decimal
	Type        LoanPaymentType
	Description string
	PaymentDate time.Time
	CreatedAt   time.Time
}

// NewLoanPayment creates a new LoanPayment entity.
func NewLoanPayment(
	loanID uuid.UUID,
	amount decimal.Decimal,
	paymentType LoanPaymentType,
	description string,
	paymentDate time.Time,
	now time.Time,
) *LoanPayment {
	return &LoanPayment{
		ID:          uuid.New(),
		LoanID:      loanID,
		Amount:      amount,
		Type:        paymentType,
		Description: description,
		PaymentDate: paymentDate,
		CreatedAt:   now,
	}
}
