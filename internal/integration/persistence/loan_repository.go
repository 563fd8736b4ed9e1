package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// loanRepository implements the adapter.LoanRepository interface.
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository instance.
func NewLoanRepository(db *gorm.DB) adapter.LoanRepository {
	return &loanRepository{
		db: db,
	}
}

// Create creates a new loan in the database.
func (r *loanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	return r.db.WithContext(ctx).Omit("Payments").Create(model.LoanFromEntity(loan)).Error
}

// FindByID retrieves a loan by its ID.
func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	var loanModel model.LoanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&loanModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLoanNotFound
		}
		return nil, result.Error
	}
	return loanModel.ToEntity(), nil
}

// FindAll retrieves loans matching the filter, newest first.
func (r *loanRepository) FindAll(ctx context.Context, filter entity.LoanFilter) ([]*entity.Loan, error) {
	query := r.db.WithContext(ctx).Model(&model.LoanModel{})
	if filter.Direction != nil {
		query = query.Where("direction = ?", string(*filter.Direction))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var loanModels []model.LoanModel
	if err := query.Order("created_at DESC").Find(&loanModels).Error; err != nil {
		return nil, err
	}

	loans := make([]*entity.Loan, len(loanModels))
	for i := range loanModels {
		loans[i] = loanModels[i].ToEntity()
	}
	return loans, nil
}

// UpdateDetails merges details into the loan and reconciles it.
func (r *loanRepository) UpdateDetails(ctx context.Context, id uuid.UUID, details entity.LoanDetails, now time.Time) (*entity.Loan, error) {
	var loan *entity.Loan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockLoan(tx, id)
		if err != nil {
			return err
		}
		locked.ApplyDetails(details)
		if err := reconcile(tx, locked, now); err != nil {
			return err
		}
		loan = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// UpdateStatus sets a manual status.
func (r *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.LoanStatus, now time.Time) (*entity.Loan, error) {
	var loan *entity.Loan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockLoan(tx, id)
		if err != nil {
			return err
		}
		if !locked.CanTransitionTo(status) {
			return domainerror.ErrInvalidStatusTransition
		}
		locked.Status = status
		locked.UpdatedAt = now
		if err := saveLoan(tx, locked); err != nil {
			return err
		}
		loan = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Delete removes the loan and its payments.
func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", id).Delete(&model.LoanPaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.LoanModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrLoanNotFound
		}
		return nil
	})
}

// FindPayments retrieves the payments of a loan, oldest first.
func (r *loanRepository) FindPayments(ctx context.Context, loanID uuid.UUID) ([]*entity.LoanPayment, error) {
	return findPayments(r.db.WithContext(ctx), loanID)
}

// AddPayment records a payment and returns the reconciled loan.
func (r *loanRepository) AddPayment(ctx context.Context, payment *entity.LoanPayment, now time.Time) (*entity.Loan, error) {
	var loan *entity.Loan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockLoan(tx, payment.LoanID)
		if err != nil {
			return err
		}
		if err := tx.Create(model.LoanPaymentFromEntity(payment)).Error; err != nil {
			return err
		}
		if err := reconcile(tx, locked, now); err != nil {
			return err
		}
		loan = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// DeletePayment removes a payment and returns the reconciled loan.
func (r *loanRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID, now time.Time) (*entity.Loan, error) {
	var loan *entity.Loan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paymentModel model.LoanPaymentModel
		if err := tx.Where("id = ?", paymentID).First(&paymentModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrLoanPaymentNotFound
			}
			return err
		}

		locked, err := lockLoan(tx, paymentModel.LoanID)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", paymentID).Delete(&model.LoanPaymentModel{}).Error; err != nil {
			return err
		}
		if err := reconcile(tx, locked, now); err != nil {
			return err
		}
		loan = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// lockLoan loads a loan holding a row lock until the transaction ends.
func lockLoan(tx *gorm.DB, id uuid.UUID) (*entity.Loan, error) {
	var loanModel model.LoanModel
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&loanModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLoanNotFound
		}
		return nil, result.Error
	}
	return loanModel.ToEntity(), nil
}

func findPayments(db *gorm.DB, loanID uuid.UUID) ([]*entity.LoanPayment, error) {
	var paymentModels []model.LoanPaymentModel
	result := db.Where("loan_id = ?", loanID).
		Order("payment_date ASC, created_at ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.LoanPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToEntity()
	}
	return payments, nil
}

// reconcile recomputes the loan from every stored payment and persists it.
func reconcile(tx *gorm.DB, loan *entity.Loan, now time.Time) error {
	payments, err := findPayments(tx, loan.ID)
	if err != nil {
		return err
	}
	loan.Reconcile(payments, now)
	return saveLoan(tx, loan)
}

func saveLoan(tx *gorm.DB, loan *entity.Loan) error {
	return tx.Model(&model.LoanModel{}).
		Where("id = ?", loan.ID).
		Updates(map[string]interface{}{
			"direction":            string(loan.Direction),
			"amount":               loan.Amount,
			"opening_balance":      loan.OpeningBalance,
			"remaining_amount":     loan.RemainingAmount,
			"counterparty_name":    loan.CounterpartyName,
			"counterparty_contact": loan.CounterpartyContact,
			"description":          loan.Description,
			"interest_rate":        loan.InterestRate,
			"due_date":             loan.DueDate,
			"status":               string(loan.Status),
			"updated_at":           loan.UpdatedAt,
			"completed_at":         loan.CompletedAt,
		}).Error
}
