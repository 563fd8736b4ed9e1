// Package loan contains loan and loan payment use cases.
package loan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// LoanOutput represents a single loan in the output.
type LoanOutput struct {
	ID                  uuid.UUID
	Direction           entity.LoanDirection
	Amount              decimal.Decimal
	RemainingAmount     decimal.Decimal
	CounterpartyName    string
	CounterpartyContact string
	Description         string
	InterestRate        decimal.Decimal
	DueDate             *time.Time
	Status              entity.LoanStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
}

// PaymentOutput represents a single loan payment in the output.
type PaymentOutput struct {
	ID          uuid.UUID
	LoanID      uuid.UUID
	Amount      decimal.Decimal
	Type        entity.LoanPaymentType
	Description string
	PaymentDate time.Time
	CreatedAt   time.Time
}

func toLoanOutput(l *entity.Loan) *LoanOutput {
	return &LoanOutput{
		ID:                  l.ID,
		Direction:           l.Direction,
		Amount:              l.Amount,
		RemainingAmount:     l.RemainingAmount,
		CounterpartyName:    l.CounterpartyName,
		CounterpartyContact: l.CounterpartyContact,
		Description:         l.Description,
		InterestRate:        l.InterestRate,
		DueDate:             l.DueDate,
		Status:              l.Status,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
		CompletedAt:         l.CompletedAt,
	}
}

func toPaymentOutput(p *entity.LoanPayment) *PaymentOutput {
	return &PaymentOutput{
		ID:          p.ID,
		LoanID:      p.LoanID,
		Amount:      p.Amount,
		Type:        p.Type,
		Description: p.Description,
		PaymentDate: p.PaymentDate,
		CreatedAt:   p.CreatedAt,
	}
}

// mapLookupError turns repository sentinels into coded loan errors.
func mapLookupError(err error, action string) error {
	switch {
	case errors.Is(err, domainerror.ErrLoanNotFound):
		return domainerror.NewLoanError(domainerror.ErrCodeLoanNotFound, "loan not found", domainerror.ErrLoanNotFound)
	case errors.Is(err, domainerror.ErrLoanPaymentNotFound):
		return domainerror.NewLoanError(domainerror.ErrCodeLoanPaymentNotFound, "loan payment not found", domainerror.ErrLoanPaymentNotFound)
	case errors.Is(err, domainerror.ErrInvalidStatusTransition):
		return domainerror.NewLoanError(domainerror.ErrCodeInvalidStatusTransition, "loan status transition not allowed", domainerror.ErrInvalidStatusTransition)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
