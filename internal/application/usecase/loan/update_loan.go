package loan

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateLoanInput represents the input for editing loan details.
type UpdateLoanInput struct {
	LoanID  uuid.UUID
	Details entity.LoanDetails
}

// UpdateLoanOutput represents the output of a loan update.
type UpdateLoanOutput struct {
	Loan *LoanOutput
}

// UpdateLoanUseCase edits loan metadata. The remaining amount and status are
// not part of its input.
type UpdateLoanUseCase struct {
	loanRepo adapter.LoanRepository
	clock    adapter.Clock
}

// NewUpdateLoanUseCase creates a new UpdateLoanUseCase instance.
func NewUpdateLoanUseCase(loanRepo adapter.LoanRepository, clock adapter.Clock) *UpdateLoanUseCase {
	return &UpdateLoanUseCase{
		loanRepo: loanRepo,
		clock:    clock,
	}
}

// Execute performs the update.
func (uc *UpdateLoanUseCase) Execute(ctx context.Context, input UpdateLoanInput) (*UpdateLoanOutput, error) {
	d := input.Details

	if d.Direction != nil && !d.Direction.IsValid() {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanDirection,
			"direction must be 'given' or 'taken'",
			domainerror.ErrInvalidLoanDirection,
		)
	}
	if d.Amount != nil && !entity.IsMoneyAmount(*d.Amount) {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanAmount,
			"amount must be greater than zero with at most 2 decimal places",
			domainerror.ErrInvalidLoanAmount,
		)
	}
	if d.CounterpartyName != nil {
		name := strings.TrimSpace(*d.CounterpartyName)
		if name == "" {
			return nil, domainerror.NewLoanError(
				domainerror.ErrCodeMissingCounterparty,
				"counterparty_name must not be empty",
				domainerror.ErrMissingCounterparty,
			)
		}
		d.CounterpartyName = &name
	}
	if d.InterestRate != nil && d.InterestRate.IsNegative() {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidInterestRate,
			"interest_rate must not be negative",
			domainerror.ErrInvalidInterestRate,
		)
	}

	loan, err := uc.loanRepo.UpdateDetails(ctx, input.LoanID, d, uc.clock.Now().UTC())
	if err != nil {
		return nil, mapLookupError(err, "update loan")
	}

	return &UpdateLoanOutput{Loan: toLoanOutput(loan)}, nil
}

// ChangeLoanStatusInput represents a manual status change.
type ChangeLoanStatusInput struct {
	LoanID uuid.UUID
	Status entity.LoanStatus
}

// ChangeLoanStatusUseCase marks loans as defaulted or active again.
type ChangeLoanStatusUseCase struct {
	loanRepo adapter.LoanRepository
	clock    adapter.Clock
}

// NewChangeLoanStatusUseCase creates a new ChangeLoanStatusUseCase instance.
func NewChangeLoanStatusUseCase(loanRepo adapter.LoanRepository, clock adapter.Clock) *ChangeLoanStatusUseCase {
	return &ChangeLoanStatusUseCase{
		loanRepo: loanRepo,
		clock:    clock,
	}
}

// Execute performs the status change.
func (uc *ChangeLoanStatusUseCase) Execute(ctx context.Context, input ChangeLoanStatusInput) (*UpdateLoanOutput, error) {
	if !input.Status.IsValid() {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanStatus,
			"status must be 'active', 'completed' or 'defaulted'",
			domainerror.ErrInvalidLoanStatus,
		)
	}
	if input.Status == entity.LoanStatusCompleted {
		return nil, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidStatusTransition,
			"a loan is completed by recording payments",
			domainerror.ErrInvalidStatusTransition,
		)
	}

	loan, err := uc.loanRepo.UpdateStatus(ctx, input.LoanID, input.Status, uc.clock.Now().UTC())
	if err != nil {
		return nil, mapLookupError(err, "change loan status")
	}

	return &UpdateLoanOutput{Loan: toLoanOutput(loan)}, nil
}

// DeleteLoanUseCase removes a loan and its payments.
type DeleteLoanUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewDeleteLoanUseCase creates a new DeleteLoanUseCase instance.
func NewDeleteLoanUseCase(loanRepo adapter.LoanRepository) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{loanRepo: loanRepo}
}

// Execute performs the deletion.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, loanID uuid.UUID) error {
	if err := uc.loanRepo.Delete(ctx, loanID); err != nil {
		return mapLookupError(err, "delete loan")
	}
	return nil
}
