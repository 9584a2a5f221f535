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

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const emailsPath = "/emails"

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, t.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, t.aPasswordResetTokenExistsFor)
	ctx.Given(`^I recorded an? (expense|income) of "([^"]*)" in "([^"]*)" on "([^"]*)"$`, t.iRecordedATransaction)
	ctx.Given(`^I set a "([^"]*)" budget of "([^"]*)" for "([^"]*)"$`, t.iSetABudget)
	ctx.Given(`^the "([^"]*)" table is unavailable$`, t.theTableIsUnavailable)
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, t.iSendRequestsToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, t.theResponseHeaderShouldBe)
}

func registerWorkerSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.When(`^the alert worker processes the recorded events$`, t.theAlertWorkerProcessesTheRecordedEvents)
	ctx.When(`^the email worker runs$`, t.theEmailWorkerRuns)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, t.theEmailProviderShouldHaveReceived)
	ctx.Then(`^email (\d+) should have the "([^"]*)" containing "([^"]*)"$`, t.emailShouldHaveFieldContaining)
}

func registerDatabaseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	t.emailProvider.SetResponse(http.MethodPost, emailsPath, http.StatusOK, map[string]any{"id": uuid.NewString()})
	return nil
}

func (t *testContext) register(email, password string) (map[string]any, error) {
	payload, _ := json.Marshal(map[string]any{
		"email":          email,
		"name":           "Test User",
		"password":       password,
		"terms_accepted": true,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return nil, err
	}
	if t.response.status != http.StatusCreated {
		return nil, fmt.Errorf("register %s returned %d: %v", email, t.response.status, t.response.body)
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("register response is not JSON: %v", t.response.body)
	}

	if id, ok := getFieldValue(body, "user.id").(string); ok {
		t.currentUserID, _ = uuid.Parse(id)
	}
	t.response = nil
	return body, nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	_, err := t.register(email, password)
	return err
}

func (t *testContext) iAmLoggedInAs(email string) error {
	body, err := t.register(email, "SecurePass123!")
	if err != nil {
		return err
	}
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	if t.accessToken == "" {
		return fmt.Errorf("no access token in register response: %v", body)
	}
	return nil
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no user registered in this scenario")
	}
	token, err := t.tokens.GenerateResetToken(context.Background(), t.currentUserID, email)
	if err != nil {
		return err
	}
	t.resetToken = token.Token
	return nil
}

func (t *testContext) iRecordedATransaction(kind, amount, category, date string) error {
	payload, _ := json.Marshal(map[string]any{
		"date":        date,
		"description": category + " " + kind,
		"amount":      amount,
		"type":        kind,
		"category":    category,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("create transaction returned %d: %v", t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) iSetABudget(category, amount, month string) error {
	payload, _ := json.Marshal(map[string]any{
		"category": category,
		"amount":   amount,
		"month":    month,
	})
	if err := t.executeRequest(http.MethodPut, "/api/v1/budgets", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated && t.response.status != http.StatusOK {
		return fmt.Errorf("upsert budget returned %d: %v", t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theTableIsUnavailable(table string) error {
	if _, ok := t.db.GetModel(table); !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}
	if err := t.db.DbConn.Migrator().RenameTable(table, table+"_offline"); err != nil {
		return err
	}
	t.offline = append(t.offline, table)
	return nil
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

// iSendRequestsToWithBody repeats a request; only the last response is kept.
func (t *testContext) iSendRequestsToWithBody(n int, method, path string, body *godog.DocString) error {
	for i := 0; i < n; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	replacer := strings.NewReplacer(
		"{{access_token}}", t.accessToken,
		"{{refresh_token}}", t.refreshToken,
		"{{reset_token}}", t.resetToken,
		"{{user_id}}", t.currentUserID.String(),
		"{{last_id}}", t.lastID.String(),
	)
	return replacer.Replace(content)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
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
	}

	var decoded map[string]any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = decoded

	if idStr, ok := decoded["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
		}
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theAlertWorkerProcessesTheRecordedEvents() error {
	for _, event := range t.events.drain() {
		if _, err := t.alerts.Execute(context.Background(), event); err != nil {
			return fmt.Errorf("alert for %s/%s failed: %w", event.Category, event.Month.Key(), err)
		}
	}
	return nil
}

func (t *testContext) theEmailWorkerRuns() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if actual := t.emailProvider.RequestCount(http.MethodPost, emailsPath); actual != count {
		return fmt.Errorf("expected %d emails, got %d", count, actual)
	}
	return nil
}

func (t *testContext) emailShouldHaveFieldContaining(index int, field, expected string) error {
	body := t.emailProvider.GetRequestBody(http.MethodPost, emailsPath, index-1)
	if body == nil {
		return fmt.Errorf("email %d was not sent", index)
	}
	value := fmt.Sprintf("%v", getFieldValue(body, field))
	if !strings.Contains(value, expected) {
		return fmt.Errorf("email %d field '%s' = %q, want it to contain %q", index, field, value, expected)
	}
	return nil
}

func (t *testContext) modelSlice(table string) (reflect.Value, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return reflect.Value{}, fmt.Errorf("table '%s' not found in models", table)
	}
	entityType := reflect.TypeOf(entity).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))
	slicePtr.Elem().Set(reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0))
	return slicePtr, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	slicePtr, err := t.modelSlice(table)
	if err != nil {
		return err
	}
	if err := t.db.DbConn.Unscoped().Find(slicePtr.Interface()).Error; err != nil {
		return err
	}
	if count := slicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	slicePtr, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(slicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := slicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
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
