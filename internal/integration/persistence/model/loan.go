package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LoanModel represents the loans table in the database.
type LoanModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Direction           string          `gorm:"type:varchar(10);not null;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OpeningBalance      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RemainingAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CounterpartyName    string          `gorm:"type:varchar(255);not null"`
	CounterpartyContact string          `gorm:"type:varchar(255)"`
	Description         string          `gorm:"type:text"`
	InterestRate        decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	DueDate             *time.Time      `gorm:"type:date"`
	Status              string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	CompletedAt         *time.Time

	Payments []LoanPaymentModel `gorm:"foreignKey:LoanID;references:ID"`
}

// TableName returns the table name for the LoanModel.
func (LoanModel) TableName() string {
	return "loans"
}

// ToEntity converts a LoanModel to a domain Loan entity.
func (m *LoanModel) ToEntity() *entity.Loan {
	return &entity.Loan{
		ID:                  m.ID,
		Direction:           entity.LoanDirection(m.Direction),
		Amount:              m.Amount,
		OpeningBalance:      m.OpeningBalance,
		RemainingAmount:     m.RemainingAmount,
		CounterpartyName:    m.CounterpartyName,
		CounterpartyContact: m.CounterpartyContact,
		Description:         m.Description,
		InterestRate:        m.InterestRate,
		DueDate:             utcPtr(m.DueDate),
		Status:              entity.LoanStatus(m.Status),
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
		CompletedAt:         utcPtr(m.CompletedAt),
	}
}

// LoanFromEntity creates a LoanModel from a domain Loan entity.
func LoanFromEntity(loan *entity.Loan) *LoanModel {
	return &LoanModel{
		ID:                  loan.ID,
		Direction:           string(loan.Direction),
		Amount:              loan.Amount,
		OpeningBalance:      loan.OpeningBalance,
		RemainingAmount:     loan.RemainingAmount,
		CounterpartyName:    loan.CounterpartyName,
		CounterpartyContact: loan.CounterpartyContact,
		Description:         loan.Description,
		InterestRate:        loan.InterestRate,
		DueDate:             loan.DueDate,
		Status:              string(loan.Status),
		CreatedAt:           loan.CreatedAt,
		UpdatedAt:           loan.UpdatedAt,
		CompletedAt:         loan.CompletedAt,
	}
}

// LoanPaymentModel represents the loan_payments table in the database.
type LoanPaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LoanID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Description string          `gorm:"type:varchar(255)"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LoanPaymentModel.
func (LoanPaymentModel) TableName() string {
	return "loan_payments"
}

// ToEntity converts a LoanPaymentModel to a domain LoanPayment entity.
func (m *LoanPaymentModel) ToEntity() *entity.LoanPayment {
	return &entity.LoanPayment{
		ID:          m.ID,
		LoanID:      m.LoanID,
		Amount:      m.Amount,
		Type:        entity.LoanPaymentType(m.Type),
		Description: m.Description,
		PaymentDate: m.PaymentDate.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// LoanPaymentFromEntity creates a LoanPaymentModel from a domain LoanPayment entity.
func LoanPaymentFromEntity(payment *entity.LoanPayment) *LoanPaymentModel {
	return &LoanPaymentModel{
		ID:          payment.ID,
		LoanID:      payment.LoanID,
		Amount:      payment.Amount,
		Type:        string(payment.Type),
		Description: payment.Description,
		PaymentDate: payment.PaymentDate,
		CreatedAt:   payment.CreatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
