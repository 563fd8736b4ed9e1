package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/loan"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// LoanUseCases groups the loan use cases served by LoanController.
type LoanUseCases struct {
	List          *loan.ListLoansUseCase
	Get           *loan.GetLoanUseCase
	Summary       *loan.GetLoanSummaryUseCase
	Create        *loan.CreateLoanUseCase
	Update        *loan.UpdateLoanUseCase
	ChangeStatus  *loan.ChangeLoanStatusUseCase
	Delete        *loan.DeleteLoanUseCase
	ListPayments  *loan.ListPaymentsUseCase
	AddPayment    *loan.AddPaymentUseCase
	DeletePayment *loan.DeletePaymentUseCase
}

// LoanController handles loan and loan payment endpoints.
type LoanController struct {
	uc LoanUseCases
}

// NewLoanController creates a new loan controller instance.
func NewLoanController(useCases LoanUseCases) *LoanController {
	return &LoanController{uc: useCases}
}

// List handles GET /loans requests.
func (c *LoanController) List(ctx *gin.Context) {
	input := loan.ListLoansInput{}
	if directionStr := ctx.Query("direction"); directionStr != "" {
		direction := entity.LoanDirection(directionStr)
		input.Direction = &direction
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.LoanStatus(statusStr)
		input.Status = &status
	}

	c.respondList(ctx, input)
}

// ListByDirection handles GET /loans/direction/:direction requests.
func (c *LoanController) ListByDirection(ctx *gin.Context) {
	direction := entity.LoanDirection(ctx.Param("direction"))
	c.respondList(ctx, loan.ListLoansInput{Direction: &direction})
}

// ListByStatus handles GET /loans/status/:status requests.
func (c *LoanController) ListByStatus(ctx *gin.Context) {
	status := entity.LoanStatus(ctx.Param("status"))
	c.respondList(ctx, loan.ListLoansInput{Status: &status})
}

func (c *LoanController) respondList(ctx *gin.Context, input loan.ListLoansInput) {
	output, err := c.uc.List.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanListResponse(output))
}

// Summary handles GET /loans/summary requests.
func (c *LoanController) Summary(ctx *gin.Context) {
	summary, err := c.uc.Summary.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanSummaryResponse(summary))
}

// Get handles GET /loans/:id requests.
func (c *LoanController) Get(ctx *gin.Context) {
	loanID, ok := parseUUIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	output, err := c.uc.Get.Execute(ctx.Request.Context(), loanID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanDetailResponse(output))
}

// Create handles POST /loans requests.
func (c *LoanController) Create(ctx *gin.Context) {
	var req dto.CreateLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.missingFields(ctx, err)
		return
	}

	dueDate, ok := c.parseOptionalDate(ctx, req.DueDate)
	if !ok {
		return
	}

	rate := decimal.Zero
	if req.InterestRate != nil {
		rate = *req.InterestRate
	}

	output, err := c.uc.Create.Execute(ctx.Request.Context(), loan.CreateLoanInput{
		Direction:           entity.LoanDirection(req.Direction),
		Amount:              *req.Amount,
		RemainingAmount:     req.RemainingAmount,
		CounterpartyName:    req.CounterpartyName,
		CounterpartyContact: req.CounterpartyContact,
		Description:         req.Description,
		InterestRate:        rate,
		DueDate:             dueDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLoanResponse(output.Loan))
}

// Update handles PATCH /loans/:id requests.
func (c *LoanController) Update(ctx *gin.Context) {
	loanID, ok := parseUUIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	var req dto.UpdateLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.missingFields(ctx, err)
		return
	}

	dueDate, ok := c.parseOptionalDate(ctx, req.DueDate)
	if !ok {
		return
	}

	details := entity.LoanDetails{
		Amount:              req.Amount,
		CounterpartyName:    req.CounterpartyName,
		CounterpartyContact: req.CounterpartyContact,
		Description:         req.Description,
		InterestRate:        req.InterestRate,
		DueDate:             dueDate,
		ClearDueDate:        req.ClearDueDate,
	}
	if req.Direction != nil {
		direction := entity.LoanDirection(*req.Direction)
		details.Direction = &direction
	}

	output, err := c.uc.Update.Execute(ctx.Request.Context(), loan.UpdateLoanInput{
		LoanID:  loanID,
		Details: details,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanResponse(output.Loan))
}

// ChangeStatus handles PUT /loans/:id/status requests.
func (c *LoanController) ChangeStatus(ctx *gin.Context) {
	loanID, ok := parseUUIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	var req dto.ChangeLoanStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.missingFields(ctx, err)
		return
	}

	output, err := c.uc.ChangeStatus.Execute(ctx.Request.Context(), loan.ChangeLoanStatusInput{
		LoanID: loanID,
		Status: entity.LoanStatus(req.Status),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanResponse(output.Loan))
}

// Delete handles DELETE /loans/:id requests.
func (c *LoanController) Delete(ctx *gin.Context) {
	loanID, ok := parseUUIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	if err := c.uc.Delete.Execute(ctx.Request.Context(), loanID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListPayments handles GET /loans/:id/payments requests.
func (c *LoanController) ListPayments(ctx *gin.Context) {
	loanID, ok := parseUUIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	payments, err := c.uc.ListPayments.Execute(ctx.Request.Context(), loanID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(payments))
}

// AddPayment handles POST /loans/:id/payments requests.
func (c *LoanController) AddPayment(ctx *gin.Context) {
	loanID, ok := parseUUIDParam(ctx, "id", "loan")
	if !ok {
		return
	}

	var req dto.AddPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.missingFields(ctx, err)
		return
	}

	paymentDate, ok := c.parseOptionalDate(ctx, req.PaymentDate)
	if !ok {
		return
	}

	output, err := c.uc.AddPayment.Execute(ctx.Request.Context(), loan.AddPaymentInput{
		LoanID:      loanID,
		Amount:      *req.Amount,
		Type:        entity.LoanPaymentType(req.Type),
		Description: req.Description,
		PaymentDate: paymentDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.PaymentResultResponse{
		Payment: dto.ToPaymentResponse(output.Payment),
		Loan:    dto.ToLoanResponse(output.Loan),
	})
}

// DeletePayment handles DELETE /loan-payments/:id requests.
func (c *LoanController) DeletePayment(ctx *gin.Context) {
	paymentID, ok := parseUUIDParam(ctx, "id", "payment")
	if !ok {
		return
	}

	output, err := c.uc.DeletePayment.Execute(ctx.Request.Context(), paymentID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanResponse(output))
}

func (c *LoanController) parseOptionalDate(ctx *gin.Context, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	date, err := parseDate(*value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidLoanDate),
		})
		return nil, false
	}
	return &date, true
}

func (c *LoanController) missingFields(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body: " + err.Error(),
		Code:  string(domainerror.ErrCodeMissingLoanFields),
	})
}
