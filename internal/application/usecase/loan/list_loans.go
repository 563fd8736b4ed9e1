package loan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListLoansInput represents the input for listing loans.
type ListLoansInput struct {
	Direction *entity.LoanDirection
	Status    *entity.LoanStatus
}

// ListLoansOutput represents the output of listing loans.
type ListLoansOutput struct {
	Loans []*LoanOutput
}

// ListLoansUseCase handles listing loans logic.
type ListLoansUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewListLoansUseCase creates a new ListLoansUseCase instance.
func NewListLoansUseCase(loanRepo adapter.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanRepo: loanRepo,
	}
}

// Execute performs the loan listing.
func (uc *ListLoansUseCase) Execute(ctx context.Context, input ListLoansInput) (*ListLoansOutput, error) {
	if input.Direction != nil && !input.Direction.IsValid() {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanDirection,
			"direction must be 'given' or 'taken'",
			domainerror.ErrInvalidLoanDirection,
		)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanStatus,
			"status must be 'active', 'completed' or 'defaulted'",
			domainerror.ErrInvalidLoanStatus,
		)
	}

	loans, err := uc.loanRepo.FindAll(ctx, entity.LoanFilter{
		Direction: input.Direction,
		Status:    input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	output := &ListLoansOutput{Loans: make([]*LoanOutput, 0, len(loans))}
	for _, l := range loans {
		output.Loans = append(output.Loans, toLoanOutput(l))
	}
	return output, nil
}

// GetLoanOutput holds a loan together with its payments.
type GetLoanOutput struct {
	Loan     *LoanOutput
	Payments []*PaymentOutput
}

// GetLoanUseCase loads one loan and its payment history.
type GetLoanUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewGetLoanUseCase creates a new GetLoanUseCase instance.
func NewGetLoanUseCase(loanRepo adapter.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute loads the loan.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID uuid.UUID) (*GetLoanOutput, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, mapLookupError(err, "find loan")
	}

	payments, err := uc.loanRepo.FindPayments(ctx, loanID)
	if err != nil {
		return nil, mapLookupError(err, "list loan payments")
	}

	output := &GetLoanOutput{
		Loan:     toLoanOutput(loan),
		Payments: make([]*PaymentOutput, 0, len(payments)),
	}
	for _, p := range payments {
		output.Payments = append(output.Payments, toPaymentOutput(p))
	}
	return output, nil
}

// GetLoanSummaryUseCase aggregates all loans.
type GetLoanSummaryUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewGetLoanSummaryUseCase creates a new GetLoanSummaryUseCase instance.
func NewGetLoanSummaryUseCase(loanRepo adapter.LoanRepository) *GetLoanSummaryUseCase {
	return &GetLoanSummaryUseCase{loanRepo: loanRepo}
}

// Execute computes the summary.
func (uc *GetLoanSummaryUseCase) Execute(ctx context.Context) (*entity.LoanSummary, error) {
	loans, err := uc.loanRepo.FindAll(ctx, entity.LoanFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load loans: %w", err)
	}

	summary := entity.SummarizeLoans(loans)
	return &summary, nil
}
