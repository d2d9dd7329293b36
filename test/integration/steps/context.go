// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	"github.com/finance-tracker/recurring/internal/application/usecase/reminder"
	"github.com/finance-tracker/recurring/internal/infra/cache"
	"github.com/finance-tracker/recurring/internal/infra/dependency"
	"github.com/finance-tracker/recurring/internal/integration/adapters"
	reminderledger "github.com/finance-tracker/recurring/internal/integration/cache"
	"github.com/finance-tracker/recurring/internal/integration/persistence"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
	"github.com/finance-tracker/recurring/internal/integration/push"
	"github.com/finance-tracker/recurring/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testJWTIssuer = "finance-tracker"
)

var schedulePlaceholder = regexp.MustCompile(`\{schedule:([^}]+)\}`)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	userID      uuid.UUID

	// Infrastructure
	db     *mock.Db
	clock  *mock.Time
	sender *push.MockSender

	// Background jobs driven by the mock clock
	dueProcessor    *recurring.ApplyDueProcessingUseCase
	reminderChecker *reminder.CheckRemindersUseCase
	lastDueRun      *recurring.ApplyDueProcessingOutput
	lastCheck       *reminder.CheckRemindersOutput

	// Schedule IDs by description
	schedules map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT:    config.JWTConfig{Secret: testJWTSecret, Issuer: testJWTIssuer},
		Scheduler: config.SchedulerConfig{
			DueCheckInterval:  time.Minute,
			ReminderSchedule:  "@every 1h",
			Timezone:          "UTC",
			ReminderLedgerTTL: 8 * 24 * time.Hour,
		},
		RateLimit: config.RateLimitConfig{TriggersPerMinute: 6000, Burst: 100},
	}
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerScheduleSteps(ctx)
	registerReminderSteps(ctx)
}

func newTestContext() (*TestContext, error) {
	db := mock.NewDb(model.AllModels())
	if err := db.ClearDB(); err != nil {
		return nil, err
	}

	redisClient, _ := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, err
	}

	cfg := testConfig()
	sender := push.NewMockSender()

	injector, err := dependency.NewInjector(cfg, db.DbConn, cache.NewRedisFromClient(redisClient), sender)
	if err != nil {
		return nil, err
	}

	scheduleRepo := persistence.NewRecurringScheduleRepository(db.DbConn)

	return &TestContext{
		server:         httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
		requestHeaders: make(map[string]string),
		db:             db,
		clock:          mock.NewTime(),
		sender:         sender,
		dueProcessor: recurring.NewApplyDueProcessingUseCase(
			scheduleRepo,
			persistence.NewOccurrenceCommitter(db.DbConn),
		),
		reminderChecker: reminder.NewCheckRemindersUseCase(
			scheduleRepo,
			persistence.NewReminderConfigRepository(db.DbConn),
			persistence.NewReminderDeliveryRepository(db.DbConn),
			reminderledger.NewRedisReminderLedger(redisClient, cfg.Scheduler.ReminderLedgerTTL),
			sender,
		),
		schedules: make(map[string]string),
	}, nil
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am authenticated as a new user$`, iAmAuthenticatedAsANewUser)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the database should contain (\d+) rows? in "([^"]*)"$`, theDatabaseShouldContainRows)
}

// registerScheduleSteps registers recurring schedule steps.
func registerScheduleSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have a (weekly|monthly|quarterly|yearly) (expense|income) "([^"]*)" of "([^"]*)" starting "([^"]*)"$`, iHaveASchedule)
	ctx.Step(`^I have a (weekly|monthly|quarterly|yearly) (expense|income) "([^"]*)" of "([^"]*)" anchored on day (\d+) starting "([^"]*)"$`, iHaveAnAnchoredSchedule)
	ctx.Step(`^the due processor runs on "([^"]*)"$`, theDueProcessorRunsOn)
	ctx.Step(`^(\d+) transactions? should have been generated$`, transactionsShouldHaveBeenGenerated)
	ctx.Step(`^the schedule "([^"]*)" should have next due date "([^"]*)"$`, theScheduleShouldHaveNextDueDate)
	ctx.Step(`^the schedule "([^"]*)" should be (active|inactive)$`, theScheduleShouldBe)
}

// registerReminderSteps registers reminder steps.
func registerReminderSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^my reminders are enabled only for "([^"]*)"$`, myRemindersAreEnabledOnlyFor)
	ctx.Step(`^my reminders are disabled$`, myRemindersAreDisabled)
	ctx.Step(`^the reminder check runs at "([^"]*)"$`, theReminderCheckRunsAt)
	ctx.Step(`^(\d+) reminders? should have been sent$`, remindersShouldHaveBeenSent)
	ctx.Step(`^the last reminder title should be "([^"]*)"$`, theLastReminderTitleShouldBe)
	ctx.Step(`^the reminder check should report (\d+) skipped$`, theReminderCheckShouldReportSkipped)
}

// API steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iAmAuthenticatedAsANewUser(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	tc.userID = uuid.New()
	token, err := adapters.SignAccessToken(testJWTSecret, testJWTIssuer, tc.userID, "user@example.com", time.Hour)
	if err != nil {
		return ctx, fmt.Errorf("failed to sign token: %w", err)
	}
	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

func iAmNotAuthenticated(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	return SetTestContext(ctx, tc), tc.send(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	return SetTestContext(ctx, tc), tc.send(method, endpoint, []byte(body.Content))
}

func (tc *TestContext) send(method, endpoint string, payload []byte) error {
	endpoint, err := tc.replacePlaceholders(endpoint)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// replacePlaceholders swaps {schedule:Description} for the remembered schedule ID.
func (tc *TestContext) replacePlaceholders(endpoint string) (string, error) {
	var missing string
	out := schedulePlaceholder.ReplaceAllStringFunc(endpoint, func(m string) string {
		name := schedulePlaceholder.FindStringSubmatch(m)[1]
		id, ok := tc.schedules[name]
		if !ok {
			missing = name
		}
		return id
	})
	if missing != "" {
		return "", fmt.Errorf("unknown schedule %q", missing)
	}
	return out, nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

// responseField resolves a dotted path such as "occurrences.0.due_date".
func (tc *TestContext) responseField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}

func theDatabaseShouldContainRows(ctx context.Context, quantity int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	count, err := tc.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %s, got %d", quantity, table, count)
	}
	return nil
}

// Schedule steps

func iHaveASchedule(ctx context.Context, frequency, kind, description, amount, start string) (context.Context, error) {
	return createSchedule(ctx, map[string]any{
		"amount":      amount,
		"description": description,
		"kind":        kind,
		"frequency":   frequency,
		"start_date":  start,
	})
}

func iHaveAnAnchoredSchedule(ctx context.Context, frequency, kind, description, amount string, day int, start string) (context.Context, error) {
	body := map[string]any{
		"amount":      amount,
		"description": description,
		"kind":        kind,
		"frequency":   frequency,
		"start_date":  start,
	}
	if frequency == "weekly" {
		body["anchor_day_of_week"] = day
	} else {
		body["anchor_day_of_month"] = day
	}
	return createSchedule(ctx, body)
}

func createSchedule(ctx context.Context, body map[string]any) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	payload, _ := json.Marshal(body)
	if err := tc.send(http.MethodPost, "/api/v1/recurring", payload); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return ctx, fmt.Errorf("failed to create schedule: %d %s", tc.response.StatusCode, string(tc.responseBody))
	}

	id, err := tc.responseField("id")
	if err != nil {
		return ctx, err
	}
	tc.schedules[body["description"].(string)] = fmt.Sprintf("%v", id)
	return SetTestContext(ctx, tc), nil
}

func theDueProcessorRunsOn(ctx context.Context, day string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	at, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ctx, err
	}
	tc.clock.SetCurrentTime(at.Add(6 * time.Hour))

	output, err := tc.dueProcessor.Execute(context.Background(), recurring.ApplyDueProcessingInput{
		Now: tc.clock.Now(),
	})
	if err != nil {
		return ctx, fmt.Errorf("due processing failed: %w", err)
	}
	tc.lastDueRun = output
	return SetTestContext(ctx, tc), nil
}

func transactionsShouldHaveBeenGenerated(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.lastDueRun == nil {
		return fmt.Errorf("the due processor has not run")
	}
	if tc.lastDueRun.Generated != count {
		return fmt.Errorf("expected %d generated transactions, got %d", count, tc.lastDueRun.Generated)
	}
	return nil
}

func theScheduleShouldHaveNextDueDate(ctx context.Context, description, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.send(http.MethodGet, "/api/v1/recurring/{schedule:"+description+"}", nil); err != nil {
		return err
	}
	return theResponseFieldShouldBe(ctx, "next_due_date", expected)
}

func theScheduleShouldBe(ctx context.Context, description, state string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.send(http.MethodGet, "/api/v1/recurring/{schedule:"+description+"}", nil); err != nil {
		return err
	}
	return theResponseFieldShouldBe(ctx, "is_active", strconv.FormatBool(state == "active"))
}

// Reminder steps

func myRemindersAreEnabledOnlyFor(ctx context.Context, list string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	types := map[string]bool{
		"due_today":     false,
		"due_tomorrow":  false,
		"due_in_3_days": false,
		"due_in_week":   false,
	}
	for _, key := range strings.Split(list, ",") {
		key = strings.TrimSpace(key)
		if _, ok := types[key]; !ok {
			return ctx, fmt.Errorf("unknown reminder type %q", key)
		}
		types[key] = true
	}

	payload, _ := json.Marshal(map[string]any{
		"enabled":        true,
		"target":         "user@example.com",
		"reminder_types": types,
	})
	if err := tc.send(http.MethodPut, "/api/v1/reminders/config", payload); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusOK {
		return ctx, fmt.Errorf("failed to update reminder config: %d %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return SetTestContext(ctx, tc), nil
}

func myRemindersAreDisabled(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.send(http.MethodPut, "/api/v1/reminders/config", []byte(`{"enabled":false}`)); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func theReminderCheckRunsAt(ctx context.Context, at string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	instant, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return ctx, err
	}
	tc.clock.SetCurrentTime(instant)

	output, err := tc.reminderChecker.Execute(context.Background(), reminder.CheckRemindersInput{
		Now: tc.clock.Now(),
	})
	if err != nil {
		return ctx, fmt.Errorf("reminder check failed: %w", err)
	}
	tc.lastCheck = output
	return SetTestContext(ctx, tc), nil
}

func remindersShouldHaveBeenSent(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := len(tc.sender.Messages()); got != count {
		return fmt.Errorf("expected %d reminders sent, got %d", count, got)
	}
	return nil
}

func theLastReminderTitleShouldBe(ctx context.Context, title string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	messages := tc.sender.Messages()
	if len(messages) == 0 {
		return fmt.Errorf("no reminders were sent")
	}
	if got := messages[len(messages)-1].Title; got != title {
		return fmt.Errorf("expected title %q, got %q", title, got)
	}
	return nil
}

func theReminderCheckShouldReportSkipped(ctx context.Context, skipped int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.lastCheck == nil {
		return fmt.Errorf("the reminder check has not run")
	}
	if tc.lastCheck.Skipped != skipped {
		return fmt.Errorf("expected %d skipped, got %d", skipped, tc.lastCheck.Skipped)
	}
	return nil
}
