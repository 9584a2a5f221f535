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
	"github.com/redis/go-redis/v9"

	"github.com/manjeet0505/Expense/config"
	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/alert"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/infra/db"
	"github.com/manjeet0505/Expense/internal/infra/dependency"
	"github.com/manjeet0505/Expense/internal/integration/adapters"
	"github.com/manjeet0505/Expense/internal/integration/cache"
	"github.com/manjeet0505/Expense/internal/integration/email"
	"github.com/manjeet0505/Expense/internal/integration/persistence"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
	"github.com/manjeet0505/Expense/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// Tables in parent-first order.
var tables = []string{
	"users",
	"refresh_tokens",
	"password_reset_tokens",
	"transactions",
	"budgets",
	"email_queue",
}

var models = map[string]any{
	"users":                 &model.UserModel{},
	"refresh_tokens":        &model.RefreshTokenModel{},
	"password_reset_tokens": &model.PasswordResetTokenModel{},
	"transactions":          &model.TransactionModel{},
	"budgets":               &model.BudgetModel{},
	"email_queue":           &model.EmailQueueModel{},
}

// suite holds everything shared by all scenarios.
type suite struct {
	server        *httptest.Server
	db            *mock.Db
	redis         *redis.Client
	emailProvider *mock.ApiMock
	events        *recordingPublisher
	injector      *dependency.Injector
	alerts        *alert.ProcessTransactionEventUseCase
	tokens        adapter.PasswordResetTokenService
}

var (
	sharedSuite *suite
	suiteOnce   sync.Once
	suiteErr    error
)

// recordingPublisher keeps transaction events in memory until the alert
// worker step drains them.
type recordingPublisher struct {
	mu     sync.Mutex
	events []adapter.TransactionRecordedEvent
}

func (p *recordingPublisher) PublishTransactionRecorded(_ context.Context, event adapter.TransactionRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) drain() []adapter.TransactionRecordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.events
	p.events = nil
	return events
}

func newSuite() (*suite, error) {
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Server.LoginRateLimit = 5
	cfg.Server.LoginRateWindow = 15 * time.Minute
	cfg.JWT.Secret = testJWTSecret
	cfg.Email.AppBaseURL = "http://app.test"
	cfg.Email.SupportEmail = "support@expense-tracker.test"

	s := &suite{
		db:            mock.NewDb(tables, models),
		redis:         mock.NewRedis(),
		emailProvider: mock.NewApiServer(),
		events:        &recordingPublisher{},
	}
	s.emailProvider.Start()

	resendClient := email.NewResendClient("re_test_key", "Expense Tracker", "noreply@expense-tracker.test")
	if err := resendClient.SetBaseURL(s.emailProvider.GetUrl()); err != nil {
		return nil, err
	}

	statsCache := cache.NewStatsCache(s.redis, time.Minute)
	injector, err := dependency.NewInjector(cfg, dependency.Externals{
		Database:       db.NewDatabase(s.db.DbConn),
		StatsCache:     statsCache,
		Publisher:      s.events,
		EmailSender:    resendClient,
		AttemptCounter: cache.NewAttemptCounter(s.redis),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}
	s.injector = injector
	s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

	gormDB := s.db.DbConn
	s.alerts = alert.NewProcessTransactionEventUseCase(
		stats.NewGetMonthlyStatsUseCase(
			persistence.NewTransactionRepository(gormDB),
			persistence.NewBudgetRepository(gormDB),
			statsCache,
		),
		persistence.NewUserRepository(gormDB),
		email.NewService(persistence.NewEmailQueueRepository(gormDB), cfg.Email.SupportEmail),
		cache.NewAlertDeduplicator(s.redis),
		cfg.Email.AppBaseURL,
		time.Hour,
	)
	s.tokens = adapters.NewPasswordResetTokenService(persistence.NewTokenStore(gormDB))

	return s, nil
}

// testContext is the per-scenario state.
type testContext struct {
	*suite

	uri           string
	client        *http.Client
	headers       map[string]string
	response      *response
	accessToken   string
	refreshToken  string
	resetToken    string
	currentUserID uuid.UUID
	lastID        uuid.UUID
	offline       []string
}

type response struct {
	status  int
	headers http.Header
	body    any
}

// InitializeTestSuite opens the shared database, cache and server.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		suiteOnce.Do(func() {
			sharedSuite, suiteErr = newSuite()
		})
		if suiteErr != nil {
			panic(suiteErr)
		}
	})

	ctx.AfterSuite(func() {
		if sharedSuite == nil {
			return
		}
		sharedSuite.server.Close()
		sharedSuite.emailProvider.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, test.after()
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerWorkerSteps(ctx, test)
	registerDatabaseSteps(ctx, test)
}

func (t *testContext) before() error {
	if sharedSuite == nil {
		return fmt.Errorf("suite is not initialized")
	}
	t.suite = sharedSuite
	t.uri = t.server.URL
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.currentUserID = uuid.Nil
	t.lastID = uuid.Nil
	t.offline = nil

	t.injector.LoginRateLimiter.Reset()
	t.emailProvider.Reset()
	t.events.drain()

	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) after() error {
	for _, table := range t.offline {
		if err := t.db.DbConn.Migrator().RenameTable(table+"_offline", table); err != nil {
			return fmt.Errorf("failed to restore table %s: %w", table, err)
		}
	}
	t.offline = nil
	return nil
}

