// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/loan"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/infra/scheduler"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/email"
	"github.com/finance-tracker/ledger/internal/integration/email/templates"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/export"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

const rateLimitSweepSchedule = "@every 15m"

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	Scheduler   *scheduler.Scheduler
}

// Options carries the optional collaborators of NewInjector.
type Options struct {
	// Redis backs the login limiter when set.
	Redis *redis.Client
	// Clock overrides the system clock, for tests.
	Clock adapter.Clock
	// DBHealthChecker overrides the ping used by /health.
	DBHealthChecker func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
// ctx bounds the background jobs registered on the scheduler.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.SystemClock{}
	}

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	loanRepo := persistence.NewLoanRepository(db)
	deviceRepo := persistence.NewDeviceRepository(db)

	// Create adapters/services
	if cfg.Auth.MasterPassword == "" && cfg.Auth.MasterPasswordHash == "" {
		slog.Warn("No master password configured, every login will be rejected")
	}
	passwordService := adapters.NewPasswordService(cfg.Auth.MasterPassword, cfg.Auth.MasterPasswordHash)
	tokenGenerator := adapters.NewDeviceTokenGenerator()
	exportLinks := adapters.NewExportLinkService(cfg.Export.LinkSecret, cfg.Export.LinkExpiry)

	notifier, worker, err := newNotifier(cfg)
	if err != nil {
		return nil, err
	}

	// Create auth use cases
	loginUseCase := auth.NewLoginDeviceUseCase(deviceRepo, passwordService, tokenGenerator, notifier, clock)
	validateUseCase := auth.NewValidateTokenUseCase(deviceRepo, clock)
	listDevicesUseCase := auth.NewListDevicesUseCase(deviceRepo)
	revokeDeviceUseCase := auth.NewRevokeDeviceUseCase(deviceRepo)
	cleanupDevicesUseCase := auth.NewCleanupDevicesUseCase(deviceRepo, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	balanceUseCase := transaction.NewGetBalanceUseCase(transactionRepo)
	summaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo, clock)
	exportUseCase := transaction.NewExportStatementUseCase(transactionRepo, clock, export.NewCSVWriter(), export.NewXLSXWriter())
	exportLinkUseCase := transaction.NewCreateExportLinkUseCase(exportLinks, exportUseCase)
	downloadUseCase := transaction.NewDownloadExportUseCase(exportLinks, deviceRepo, exportUseCase)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(transactionRepo)

	// Create loan use cases
	loanUseCases := controller.LoanUseCases{
		List:          loan.NewListLoansUseCase(loanRepo),
		Get:           loan.NewGetLoanUseCase(loanRepo),
		Summary:       loan.NewGetLoanSummaryUseCase(loanRepo),
		Create:        loan.NewCreateLoanUseCase(loanRepo, clock),
		Update:        loan.NewUpdateLoanUseCase(loanRepo, clock),
		ChangeStatus:  loan.NewChangeLoanStatusUseCase(loanRepo, clock),
		Delete:        loan.NewDeleteLoanUseCase(loanRepo),
		ListPayments:  loan.NewListPaymentsUseCase(loanRepo),
		AddPayment:    loan.NewAddPaymentUseCase(loanRepo, clock),
		DeletePayment: loan.NewDeletePaymentUseCase(loanRepo, clock),
	}

	// Create controllers
	healthChecker := opts.DBHealthChecker
	if healthChecker == nil {
		healthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(healthChecker)

	authController := controller.NewAuthController(
		loginUseCase,
		validateUseCase,
		listDevicesUseCase,
		revokeDeviceUseCase,
		cleanupDevicesUseCase,
		cfg.Auth.DeviceRetentionDays,
	)

	categoryController := controller.NewCategoryController(listCategoriesUseCase)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		balanceUseCase,
		summaryUseCase,
	)

	exportController := controller.NewExportController(
		exportUseCase,
		exportLinkUseCase,
		downloadUseCase,
		cfg.Server.PublicURL,
	)

	loanController := controller.NewLoanController(loanUseCases)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var limiterStore middleware.RateLimitStore
	var memoryStore *middleware.MemoryStore
	if opts.Redis != nil {
		limiterStore = middleware.NewRedisStore(opts.Redis)
	} else {
		memoryStore = middleware.NewMemoryStore()
		limiterStore = memoryStore
	}
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(limiterStore, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(limiterStore, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	}
	authMiddleware := middleware.NewDeviceAuthMiddleware(validateUseCase)

	// Create scheduler
	jobs := scheduler.New(ctx)
	if cfg.Auth.CleanupEnabled {
		job := scheduler.NewDeviceCleanupJob(cleanupDevicesUseCase, cfg.Auth.DeviceRetentionDays)
		if err := jobs.AddJob(cfg.Auth.CleanupSchedule, job); err != nil {
			return nil, fmt.Errorf("invalid device cleanup schedule %q: %w", cfg.Auth.CleanupSchedule, err)
		}
	}
	if memoryStore != nil {
		sweep := scheduler.NewFuncJob("rate_limit_sweep", func(context.Context) error {
			memoryStore.Cleanup()
			return nil
		})
		if err := jobs.AddJob(rateLimitSweepSchedule, sweep); err != nil {
			return nil, err
		}
	}

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		exportController,
		loanController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: worker,
		Scheduler:   jobs,
	}, nil
}

// newNotifier returns the new-device notifier and, when alerts are enabled, the worker that delivers them.
func newNotifier(cfg *config.Config) (adapter.DeviceNotifier, *email.Worker, error) {
	if cfg.Email.AlertRecipient == "" {
		slog.Info("New device alerts disabled, no recipient configured")
		return email.NoopNotifier{}, nil, nil
	}
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("New device alerts disabled, RESEND_API_KEY is not set")
		return email.NoopNotifier{}, nil, nil
	}

	sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	if cfg.Email.ResendBaseURL != "" {
		var err error
		if sender, err = sender.WithBaseURL(cfg.Email.ResendBaseURL); err != nil {
			return nil, nil, err
		}
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	service := email.NewService(cfg.Email.AlertRecipient, 0)
	worker := email.NewWorker(service, sender, renderer, email.DefaultWorkerConfig())
	return service, worker, nil
}
