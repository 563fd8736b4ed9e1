// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/email"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
	"github.com/finance-tracker/ledger/test/integration/mock"
)

const (
	testMasterPassword = "correct horse battery staple"
	testAlertRecipient = "owner@example.com"
	resendEmailsPath   = "/emails"
)

// suite holds the resources shared by every scenario.
type suite struct {
	server      *httptest.Server
	db          *mock.Db
	timeMock    *mock.Time
	resend      *mock.ApiMock
	emailWorker *email.Worker
}

var (
	suiteOnce   sync.Once
	sharedSuite *suite
)

func startSuite() *suite {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			timeMock: mock.NewTime(),
			resend:   mock.NewApiServer(),
			db: mock.NewDb(map[string]any{
				"transactions":  &model.TransactionModel{},
				"loans":         &model.LoanModel{},
				"loan_payments": &model.LoanPaymentModel{},
				"device_tokens": &model.DeviceTokenModel{},
			}),
		}
		s.resend.Start()

		cfg := config.Load()
		cfg.Server.Environment = "integration"
		cfg.Auth.MasterPassword = testMasterPassword
		cfg.Auth.MasterPasswordHash = ""
		cfg.Auth.LoginMaxAttempts = 5
		cfg.Auth.LoginWindow = 15 * time.Minute
		cfg.Auth.CleanupEnabled = false
		cfg.Auth.DeviceRetentionDays = 30
		cfg.Export.LinkSecret = "integration-link-secret"
		cfg.Export.LinkExpiry = 5 * time.Minute
		cfg.Email.ResendAPIKey = "re_integration"
		cfg.Email.ResendBaseURL = s.resend.GetUrl()
		cfg.Email.AlertRecipient = testAlertRecipient

		injector, err := dependency.NewInjector(context.Background(), cfg, s.db.DbConn, dependency.Options{
			Redis: mock.NewRedis(),
			Clock: s.timeMock,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}
		s.emailWorker = injector.EmailWorker
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

		sharedSuite = s
	})
	return sharedSuite
}

type testContext struct {
	*suite

	client      *http.Client
	headers     map[string]string
	accessToken string
	response    *response

	deviceTokens      map[string]string
	currentDevice     string
	lastTransactionID uuid.UUID
	lastLoanID        uuid.UUID
	lastPaymentID     uuid.UUID
	exportToken       string
}

type response struct {
	status  int
	headers http.Header
	raw     string
	body    any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		startSuite()
	})

	ctx.AfterSuite(func() {
		if sharedSuite == nil {
			return
		}
		sharedSuite.server.Close()
		sharedSuite.resend.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		suite:  startSuite(),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)
	ctx.Given(`^time advances by "([^"]*)"$`, test.timeAdvancesBy)

	// Device steps
	ctx.Given(`^I am logged in on device "([^"]*)"$`, test.iAmLoggedInOnDevice)
	ctx.Given(`^I use the token of device "([^"]*)"$`, test.iUseTheTokenOfDevice)

	// Ledger setup steps
	ctx.Given(`^a transaction exists with type "([^"]*)" amount "([^"]*)" category "([^"]*)" and date "([^"]*)"$`, test.aTransactionExists)
	ctx.Given(`^a loan exists with direction "([^"]*)" amount "([^"]*)" and counterparty "([^"]*)"$`, test.aLoanExists)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the pending emails are delivered$`, test.thePendingEmailsAreDelivered)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)
	ctx.Then(`^the response body should be:$`, test.theResponseBodyShouldBe)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email should be sent to "([^"]*)"$`, test.theLastEmailShouldBeSentTo)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.deviceTokens = make(map[string]string)
	t.currentDevice = ""
	t.lastTransactionID = uuid.Nil
	t.lastLoanID = uuid.Nil
	t.lastPaymentID = uuid.Nil
	t.exportToken = ""

	t.timeMock.Reset()
	if t.emailWorker != nil {
		t.emailWorker.ProcessNow(context.Background())
	}
	t.resend.Reset()
	t.resend.SetResponse(http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": "email_integration"})

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}
