package loan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateLoanInput represents the input for loan creation.
type CreateLoanInput struct {
	Direction           entity.LoanDirection
	Amount              decimal.Decimal
	RemainingAmount     *decimal.Decimal // optional override, migration use only
	CounterpartyName    string
	CounterpartyContact string
	Description         string
	InterestRate        decimal.Decimal
	DueDate             *time.Time
}

// CreateLoanOutput represents the output of loan creation.
type CreateLoanOutput struct {
	Loan *LoanOutput
}

// CreateLoanUseCase handles loan creation logic.
type CreateLoanUseCase struct {
	loanRepo adapter.LoanRepository
	clock    adapter.Clock
}

// NewCreateLoanUseCase creates a new CreateLoanUseCase instance.
func NewCreateLoanUseCase(loanRepo adapter.LoanRepository, clock adapter.Clock) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo: loanRepo,
		clock:    clock,
	}
}

// Execute performs the loan creation.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, input CreateLoanInput) (*CreateLoanOutput, error) {
	input.CounterpartyName = strings.TrimSpace(input.CounterpartyName)

	if err := validateLoanFields(input.Direction, input.Amount, input.CounterpartyName, input.InterestRate); err != nil {
		return nil, err
	}

	if input.RemainingAmount != nil && !entity.IsMoneyAmount(*input.RemainingAmount) {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidOpeningBalance,
			"remaining_amount must be greater than zero with at most 2 decimal places when provided",
			domainerror.ErrInvalidOpeningBalance,
		)
	}

	loan := entity.NewLoan(
		input.Direction,
		input.Amount,
		input.RemainingAmount,
		input.CounterpartyName,
		strings.TrimSpace(input.CounterpartyContact),
		input.Description,
		input.InterestRate,
		input.DueDate,
		uc.clock.Now().UTC(),
	)

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	return &CreateLoanOutput{Loan: toLoanOutput(loan)}, nil
}

func validateLoanFields(direction entity.LoanDirection, amount decimal.Decimal, counterparty string, rate decimal.Decimal) error {
	if !direction.IsValid() {
		return domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanDirection,
			"direction must be 'given' or 'taken'",
			domainerror.ErrInvalidLoanDirection,
		)
	}
	if !entity.IsMoneyAmount(amount) {
		return domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanAmount,
			"amount must be greater than zero with at most 2 decimal places",
			domainerror.ErrInvalidLoanAmount,
		)
	}
	if counterparty == "" {
		return domainerror.NewLoanError(
			domainerror.ErrCodeMissingCounterparty,
			"counterparty_name is required",
			domainerror.ErrMissingCounterparty,
		)
	}
	if rate.IsNegative() {
		return domainerror.NewLoanError(
			domainerror.ErrCodeInvalidInterestRate,
			"interest_rate must not be negative",
			domainerror.ErrInvalidInterestRate,
		)
	}
	return nil
}
