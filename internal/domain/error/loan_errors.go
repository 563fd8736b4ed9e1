package error

import "errors"

// Loan domain errors.
var (
	// ErrLoanNotFound is returned when a loan is not found in the system.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrLoanPaymentNotFound is returned when a loan payment is not found in the system.
	ErrLoanPaymentNotFound = errors.New("loan payment not found")

	// ErrInvalidLoanDirection is returned when the direction is neither given nor taken.
	ErrInvalidLoanDirection = errors.New("invalid loan direction")

	// ErrInvalidLoanAmount is returned when the principal is not positive.
	ErrInvalidLoanAmount = errors.New("invalid loan amount")

	// ErrInvalidOpeningBalance is returned when the remaining amount override is not positive.
	ErrInvalidOpeningBalance = errors.New("remaining amount override must be positive")

	// ErrMissingCounterparty is returned when the counterparty name is empty.
	ErrMissingCounterparty = errors.New("counterparty name is required")

	// ErrInvalidInterestRate is returned when the interest rate is negative.
	ErrInvalidInterestRate = errors.New("interest rate must not be negative")

	// ErrInvalidLoanStatus is returned when the status value is unknown.
	ErrInvalidLoanStatus = errors.New("invalid loan status")

	// ErrInvalidStatusTransition is returned when a manual status change is not allowed.
	ErrInvalidStatusTransition = errors.New("loan status transition not allowed")

	// ErrInvalidPaymentAmount is returned when a payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentType is returned when the payment type is neither payment nor interest.
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrInvalidLoanDate is returned when a due or payment date is malformed.
	ErrInvalidLoanDate = errors.New("invalid date")
)

// LoanErrorCode defines error codes for loan errors.
// Format: LOAN-XXYYYY where XX is category and YYYY is specific error.
type LoanErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidLoanDirection    LoanErrorCode = "LOAN-010001"
	ErrCodeInvalidLoanAmount       LoanErrorCode = "LOAN-010002"
	ErrCodeInvalidOpeningBalance   LoanErrorCode = "LOAN-010003"
	ErrCodeMissingCounterparty     LoanErrorCode = "LOAN-010004"
	ErrCodeInvalidInterestRate     LoanErrorCode = "LOAN-010005"
	ErrCodeInvalidLoanStatus       LoanErrorCode = "LOAN-010006"
	ErrCodeInvalidStatusTransition LoanErrorCode = "LOAN-010007"
	ErrCodeInvalidLoanDate         LoanErrorCode = "LOAN-010008"
	ErrCodeMissingLoanFields       LoanErrorCode = "LOAN-010009"

	// Payment validation errors (02XXXX)
	ErrCodeInvalidPaymentAmount LoanErrorCode = "LOAN-020001"
	ErrCodeInvalidPaymentType   LoanErrorCode = "LOAN-020002"

	// Lookup errors (03XXXX)
	ErrCodeLoanNotFound        LoanErrorCode = "LOAN-030001"
	ErrCodeLoanPaymentNotFound LoanErrorCode = "LOAN-030002"
)

// LoanError represents a loan error with code and message.
type LoanError struct {
	Code    LoanErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LoanError) Unwrap() error {
	return e.Err
}

// NewLoanError creates a new LoanError with the given code and message.
func NewLoanError(code LoanErrorCode, message string, err error) *LoanError {
	return &LoanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
