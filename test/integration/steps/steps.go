package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time '%s': %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) timeAdvancesBy(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", value, err)
	}
	t.timeMock.Advance(d)
	return nil
}

func (t *testContext) iAmLoggedInOnDevice(deviceID string) error {
	payload, _ := json.Marshal(map[string]string{
		"password":    testMasterPassword,
		"device_id":   deviceID,
		"device_name": deviceID,
	})

	saved := t.accessToken
	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	t.accessToken = saved

	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", t.response.status, t.response.raw)
	}
	token, ok := getFieldValue(t.response.body, "token").(string)
	if !ok || token == "" {
		return fmt.Errorf("login response has no token: %s", t.response.raw)
	}

	t.deviceTokens[deviceID] = token
	return t.iUseTheTokenOfDevice(deviceID)
}

func (t *testContext) iUseTheTokenOfDevice(deviceID string) error {
	token, ok := t.deviceTokens[deviceID]
	if !ok {
		return fmt.Errorf("device '%s' has not logged in", deviceID)
	}
	t.accessToken = token
	t.currentDevice = deviceID
	t.headers["X-Device-ID"] = deviceID
	return nil
}

func (t *testContext) aTransactionExists(transactionType, amount, category, date string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}

	now := time.Now().UTC()
	transaction := &model.TransactionModel{
		ID:        uuid.New(),
		Type:      transactionType,
		Amount:    value,
		Category:  category,
		Date:      day,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.lastTransactionID = transaction.ID
	return t.db.DbConn.Create(transaction).Error
}

func (t *testContext) aLoanExists(direction, amount, counterparty string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	now := time.Now().UTC()
	loan := &model.LoanModel{
		ID:               uuid.New(),
		Direction:        direction,
		Amount:           value,
		OpeningBalance:   value,
		RemainingAmount:  value,
		CounterpartyName: counterparty,
		InterestRate:     decimal.Zero,
		Status:           "active",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	t.lastLoanID = loan.ID
	return t.db.DbConn.Omit("Payments").Create(loan).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{loan_id}}", t.lastLoanID.String())
	content = strings.ReplaceAll(content, "{{payment_id}}", t.lastPaymentID.String())
	content = strings.ReplaceAll(content, "{{export_token}}", t.exportToken)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ledger-integration/1.0")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     string(bodyBytes),
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)
	return nil
}

// captureIDs remembers identifiers returned by the API for later placeholders.
func (t *testContext) captureIDs(body map[string]any) {
	if loan, ok := body["loan"].(map[string]any); ok {
		t.captureIDs(loan)
	}
	if payment, ok := body["payment"].(map[string]any); ok {
		t.captureIDs(payment)
	}

	id, err := uuid.Parse(fmt.Sprintf("%v", body["id"]))
	if err == nil {
		switch {
		case body["loan_id"] != nil:
			t.lastPaymentID = id
		case body["counterparty_name"] != nil:
			t.lastLoanID = id
		case body["category"] != nil:
			t.lastTransactionID = id
		}
	}

	if token, ok := body["token"].(string); ok && body["url"] != nil {
		t.exportToken = token
	}
}

func (t *testContext) thePendingEmailsAreDelivered() error {
	if t.emailWorker == nil {
		return errors.New("email worker is not configured")
	}
	t.emailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %s", t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", t.response.raw)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %s", field, t.response.raw)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	actual := t.response.headers.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldBe(expected *godog.DocString) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	want := strings.TrimSpace(expected.Content)
	got := strings.TrimSpace(t.response.raw)
	if got != want {
		return fmt.Errorf("expected body:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Model(entity)
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	actual := t.resend.GetRequestCount(http.MethodPost, resendEmailsPath)
	if actual != count {
		return fmt.Errorf("expected %d emails, provider received %d", count, actual)
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeSentTo(recipient string) error {
	count := t.resend.GetRequestCount(http.MethodPost, resendEmailsPath)
	if count == 0 {
		return errors.New("no email was sent")
	}

	body := t.resend.GetRequestBody(http.MethodPost, resendEmailsPath, count-1)
	to := fmt.Sprintf("%v", body["to"])
	if !strings.Contains(to, recipient) {
		return fmt.Errorf("expected email to '%s', got '%s'", recipient, to)
	}
	if auth := t.resend.GetRequestHeader(http.MethodPost, resendEmailsPath, count-1, "Authorization"); auth != "Bearer re_integration" {
		return fmt.Errorf("unexpected provider authorization header '%s'", auth)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
