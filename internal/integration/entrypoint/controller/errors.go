// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// handleError maps coded domain errors to HTTP responses. Anything else is
// logged and reported as a generic internal error.
func handleError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(statusForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var loanErr *domainerror.LoanError
	if errors.As(err, &loanErr) {
		ctx.JSON(statusForLoanError(loanErr.Code), dto.ErrorResponse{
			Error: loanErr.Message,
			Code:  string(loanErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidExportLink:
		return http.StatusUnauthorized
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeUnsupportedExport:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForLoanError(code domainerror.LoanErrorCode) int {
	switch code {
	case domainerror.ErrCodeLoanNotFound,
		domainerror.ErrCodeLoanPaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidLoanDirection,
		domainerror.ErrCodeInvalidLoanAmount,
		domainerror.ErrCodeInvalidOpeningBalance,
		domainerror.ErrCodeMissingCounterparty,
		domainerror.ErrCodeInvalidInterestRate,
		domainerror.ErrCodeInvalidLoanStatus,
		domainerror.ErrCodeInvalidStatusTransition,
		domainerror.ErrCodeInvalidLoanDate,
		domainerror.ErrCodeMissingLoanFields,
		domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidPaymentType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeMissingDeviceID:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken,
		domainerror.ErrCodeDeviceMismatch:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeDeviceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// parseUUIDParam parses a path parameter, writing a 400 when it is malformed.
func parseUUIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD value.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
