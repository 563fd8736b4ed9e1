package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/loan"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateLoanRequest represents the request body for loan creation.
type CreateLoanRequest struct {
	Direction           string           `json:"direction" binding:"required"`
	Amount              *decimal.Decimal `json:"amount" binding:"required"`
	RemainingAmount     *decimal.Decimal `json:"remaining_amount,omitempty"`
	CounterpartyName    string           `json:"counterparty_name" binding:"required"`
	CounterpartyContact string           `json:"counterparty_contact,omitempty" binding:"omitempty,max=255"`
	Description         string           `json:"description,omitempty"`
	InterestRate        *decimal.Decimal `json:"interest_rate,omitempty"`
	DueDate             *string          `json:"due_date,omitempty"`
}

// UpdateLoanRequest represents the request body for editing loan details.
// Remaining amount and status are not editable here.
type UpdateLoanRequest struct {
	Direction           *string          `json:"direction,omitempty"`
	Amount              *decimal.Decimal `json:"amount,omitempty"`
	CounterpartyName    *string          `json:"counterparty_name,omitempty"`
	CounterpartyContact *string          `json:"counterparty_contact,omitempty" binding:"omitempty,max=255"`
	Description         *string          `json:"description,omitempty"`
	InterestRate        *decimal.Decimal `json:"interest_rate,omitempty"`
	DueDate             *string          `json:"due_date,omitempty"`
	ClearDueDate        bool             `json:"clear_due_date,omitempty"`
}

// ChangeLoanStatusRequest represents a manual status change.
type ChangeLoanStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddPaymentRequest represents the request body for recording a payment.
type AddPaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Type        string           `json:"type,omitempty"`
	Description string           `json:"description,omitempty" binding:"omitempty,max=255"`
	PaymentDate *string          `json:"payment_date,omitempty"`
}

// LoanResponse represents a single loan in API responses.
type LoanResponse struct {
	ID                  string     `json:"id"`
	Direction           string     `json:"direction"`
	Amount              string     `json:"amount"`
	RemainingAmount     string     `json:"remaining_amount"`
	CounterpartyName    string     `json:"counterparty_name"`
	CounterpartyContact string     `json:"counterparty_contact"`
	Description         string     `json:"description"`
	InterestRate        string     `json:"interest_rate"`
	DueDate             *string    `json:"due_date"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CompletedAt         *time.Time `json:"completed_at"`
}

// PaymentResponse represents a single loan payment in API responses.
type PaymentResponse struct {
	ID          string    `json:"id"`
	LoanID      string    `json:"loan_id"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	PaymentDate string    `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoanListResponse represents the response for listing loans.
type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// LoanDetailResponse represents a loan with its payment history.
type LoanDetailResponse struct {
	Loan     LoanResponse      `json:"loan"`
	Payments []PaymentResponse `json:"payments"`
}

// PaymentListResponse represents the payments of a loan.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// PaymentResultResponse represents a recorded payment and the reconciled loan.
type PaymentResultResponse struct {
	Payment PaymentResponse `json:"payment"`
	Loan    LoanResponse    `json:"loan"`
}

// LoanSummaryResponse represents the aggregate loan figures.
type LoanSummaryResponse struct {
	TotalLoansGiven  string `json:"total_loans_given"`
	TotalLoansTaken  string `json:"total_loans_taken"`
	ActiveLoansGiven string `json:"active_loans_given"`
	ActiveLoansTaken string `json:"active_loans_taken"`
	TotalOutstanding string `json:"total_outstanding"`
	TotalOwed        string `json:"total_owed"`
	ActiveCount      int    `json:"active_count"`
	CompletedCount   int    `json:"completed_count"`
	DefaultedCount   int    `json:"defaulted_count"`
}

// ToLoanResponse converts a LoanOutput to a LoanResponse DTO.
func ToLoanResponse(l *loan.LoanOutput) LoanResponse {
	return LoanResponse{
		ID:                  l.ID.String(),
		Direction:           string(l.Direction),
		Amount:              money(l.Amount),
		RemainingAmount:     money(l.RemainingAmount),
		CounterpartyName:    l.CounterpartyName,
		CounterpartyContact: l.CounterpartyContact,
		Description:         l.Description,
		InterestRate:        l.InterestRate.String(),
		DueDate:             optionalDate(l.DueDate),
		Status:              string(l.Status),
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
		CompletedAt:         l.CompletedAt,
	}
}

// ToPaymentResponse converts a PaymentOutput to a PaymentResponse DTO.
func ToPaymentResponse(p *loan.PaymentOutput) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		LoanID:      p.LoanID.String(),
		Amount:      money(p.Amount),
		Type:        string(p.Type),
		Description: p.Description,
		PaymentDate: dateString(p.PaymentDate),
		CreatedAt:   p.CreatedAt,
	}
}

// ToLoanListResponse converts a ListLoansOutput to a LoanListResponse.
func ToLoanListResponse(output *loan.ListLoansOutput) LoanListResponse {
	loans := make([]LoanResponse, len(output.Loans))
	for i, l := range output.Loans {
		loans[i] = ToLoanResponse(l)
	}
	return LoanListResponse{Loans: loans}
}

// ToPaymentListResponse converts payments to a PaymentListResponse.
func ToPaymentListResponse(payments []*loan.PaymentOutput) PaymentListResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(p)
	}
	return PaymentListResponse{Payments: out}
}

// ToLoanDetailResponse converts a GetLoanOutput to a LoanDetailResponse.
func ToLoanDetailResponse(output *loan.GetLoanOutput) LoanDetailResponse {
	return LoanDetailResponse{
		Loan:     ToLoanResponse(output.Loan),
		Payments: ToPaymentListResponse(output.Payments).Payments,
	}
}

// ToLoanSummaryResponse converts a LoanSummary to a LoanSummaryResponse.
func ToLoanSummaryResponse(s *entity.LoanSummary) LoanSummaryResponse {
	return LoanSummaryResponse{
		TotalLoansGiven:  money(s.TotalLoansGiven),
		TotalLoansTaken:  money(s.TotalLoansTaken),
		ActiveLoansGiven: money(s.ActiveLoansGiven),
		ActiveLoansTaken: money(s.ActiveLoansTaken),
		TotalOutstanding: money(s.TotalOutstanding),
		TotalOwed:        money(s.TotalOwed),
		ActiveCount:      s.ActiveCount,
		CompletedCount:   s.CompletedCount,
		DefaultedCount:   s.DefaultedCount,
	}
}
