// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	exportController      *controller.ExportController
	loanController        *controller.LoanController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.DeviceAuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	exportController *controller.ExportController,
	loanController *controller.LoanController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.DeviceAuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		categoryController:    categoryController,
		transactionController: transactionController,
		exportController:      exportController,
		loanController:        loanController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.authMiddleware == nil {
		return
	}
	authenticated := r.authMiddleware.Authenticate()

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.GET("/validate", r.authController.Validate)

			protected := auth.Group("")
			protected.Use(authenticated)
			{
				protected.GET("/devices", r.authController.ListDevices)
				protected.DELETE("/devices/:deviceId", r.authController.RevokeDevice)
				protected.POST("/devices/cleanup", r.authController.CleanupDevices)
				protected.POST("/logout", r.authController.Logout)
			}
		}
	}

	if r.categoryController != nil {
		categories := v1.Group("/categories")
		categories.Use(authenticated)
		{
			categories.GET("", r.categoryController.List)
		}
	}

	if r.transactionController != nil {
		transactions := v1.Group("/transactions")

		// The download link carries its own signed token.
		if r.exportController != nil {
			transactions.GET("/export/download", r.exportController.Download)
		}

		protected := transactions.Group("")
		protected.Use(authenticated)
		{
			protected.GET("", r.transactionController.List)
			protected.GET("/type/:type", r.transactionController.ListByType)
			protected.GET("/balance", r.transactionController.Balance)
			protected.GET("/summary", r.transactionController.Summary)
			protected.POST("", r.transactionController.Create)
			protected.PATCH("/:id", r.transactionController.Update)
			protected.DELETE("/:id", r.transactionController.Delete)

			if r.exportController != nil {
				protected.GET("/export", r.exportController.ExportCSV)
				protected.GET("/export/xlsx", r.exportController.ExportXLSX)
				protected.POST("/export/link", r.exportController.CreateLink)
			}
		}
	}

	if r.loanController != nil {
		loans := v1.Group("/loans")
		loans.Use(authenticated)
		{
			loans.GET("", r.loanController.List)
			loans.GET("/direction/:direction", r.loanController.ListByDirection)
			loans.GET("/status/:status", r.loanController.ListByStatus)
			loans.GET("/summary", r.loanController.Summary)
			loans.POST("", r.loanController.Create)
			loans.GET("/:id", r.loanController.Get)
			loans.PATCH("/:id", r.loanController.Update)
			loans.PUT("/:id/status", r.loanController.ChangeStatus)
			loans.DELETE("/:id", r.loanController.Delete)
			loans.GET("/:id/payments", r.loanController.ListPayments)
			loans.POST("/:id/payments", r.loanController.AddPayment)
		}

		payments := v1.Group("/loan-payments")
		payments.Use(authenticated)
		{
			payments.DELETE("/:id", r.loanController.DeletePayment)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
