// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/manjeet0505/Expense/config"
	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/application/usecase/auth"
	"github.com/manjeet0505/Expense/internal/application/usecase/budget"
	"github.com/manjeet0505/Expense/internal/application/usecase/category"
	"github.com/manjeet0505/Expense/internal/application/usecase/contact"
	"github.com/manjeet0505/Expense/internal/application/usecase/dashboard"
	"github.com/manjeet0505/Expense/internal/application/usecase/stats"
	"github.com/manjeet0505/Expense/internal/application/usecase/transaction"
	"github.com/manjeet0505/Expense/internal/application/usecase/user"
	"github.com/manjeet0505/Expense/internal/infra/db"
	"github.com/manjeet0505/Expense/internal/infra/server/router"
	"github.com/manjeet0505/Expense/internal/integration/adapters"
	"github.com/manjeet0505/Expense/internal/integration/cache"
	"github.com/manjeet0505/Expense/internal/integration/email"
	"github.com/manjeet0505/Expense/internal/integration/email/templates"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/controller"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/middleware"
	"github.com/manjeet0505/Expense/internal/integration/messaging"
	"github.com/manjeet0505/Expense/internal/integration/persistence"
)

// Externals are the connections opened by the entry point. Optional ones may
// be nil and are replaced by no-op implementations.
type Externals struct {
	Database       *db.Database
	StatsCache     adapter.StatsCache
	Publisher      adapter.EventPublisher
	EmailSender    adapter.EmailSender
	// AttemptCounter backs the login rate limit. Nil keeps counts in memory.
	AttemptCounter middleware.AttemptCounter
}

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	Database         *db.Database
	Router           *router.Router
	EmailWorker      *email.Worker
	TokenStore       persistence.TokenStore
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, ext Externals) (*Injector, error) {
	if ext.Database == nil {
		return nil, fmt.Errorf("database is required")
	}
	if ext.StatsCache == nil {
		ext.StatsCache = cache.NopStatsCache{}
	}
	if ext.Publisher == nil {
		ext.Publisher = messaging.NopPublisher{}
	}
	if ext.EmailSender == nil {
		slog.Warn("No email provider configured, emails will only be logged")
		ext.EmailSender = email.NewLogSender()
	}

	gormDB := ext.Database.DB()

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenStore := persistence.NewTokenStore(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	dashboardRepo := persistence.NewDashboardRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenStore)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenStore)
	emailService := email.NewService(emailQueueRepo, cfg.Email.SupportEmail)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, ext.EmailSender, renderer, email.WorkerConfig{
		PollInterval:    cfg.Email.PollInterval,
		BatchSize:       cfg.Email.BatchSize,
		CleanupInterval: cfg.Email.CleanupInterval,
		RetentionDays:   cfg.Email.RetentionDays,
		ClaimTimeout:    cfg.Email.ClaimTimeout,
	})

	// Auth
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)

	// Users
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo)
	changePasswordUseCase := user.NewChangePasswordUseCase(userRepo, passwordService, tokenService)
	deleteAccountUseCase := user.NewDeleteAccountUseCase(userRepo, passwordService, tokenService, ext.StatsCache)

	// Transactions
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	recentTransactionsUseCase := transaction.NewGetRecentTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, ext.StatsCache, ext.Publisher)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, ext.StatsCache, ext.Publisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, ext.StatsCache, ext.Publisher)

	// Stats and budgets
	getMonthlyStatsUseCase := stats.NewGetMonthlyStatsUseCase(transactionRepo, budgetRepo, ext.StatsCache)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, getMonthlyStatsUseCase)
	upsertBudgetUseCase := budget.NewUpsertBudgetUseCase(budgetRepo, ext.StatsCache)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, ext.StatsCache)

	// Dashboard
	getTrendsUseCase := dashboard.NewGetTrendsUseCase(dashboardRepo)
	getCategoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(dashboardRepo)

	controllers := router.Controllers{
		Health: controller.NewHealthController(ext.Database),
		Auth: controller.NewAuthController(controller.AuthUseCases{
			Register:       registerUseCase,
			Login:          loginUseCase,
			Refresh:        refreshTokenUseCase,
			Logout:         logoutUseCase,
			ForgotPassword: forgotPasswordUseCase,
			ResetPassword:  resetPasswordUseCase,
		}),
		User: controller.NewUserController(
			getProfileUseCase,
			updateProfileUseCase,
			changePasswordUseCase,
			deleteAccountUseCase,
		),
		Category: controller.NewCategoryController(category.NewListCategoriesUseCase()),
		Transaction: controller.NewTransactionController(controller.TransactionUseCases{
			List:   listTransactionsUseCase,
			Recent: recentTransactionsUseCase,
			Create: createTransactionUseCase,
			Update: updateTransactionUseCase,
			Delete: deleteTransactionUseCase,
		}),
		Budget:    controller.NewBudgetController(listBudgetsUseCase, upsertBudgetUseCase, deleteBudgetUseCase),
		Stats:     controller.NewStatsController(getMonthlyStatsUseCase),
		Dashboard: controller.NewDashboardController(getTrendsUseCase, getCategoryBreakdownUseCase),
		Contact:   controller.NewContactController(contact.NewSendContactMessageUseCase(emailService)),
	}

	if ext.AttemptCounter == nil {
		ext.AttemptCounter = middleware.NewMemoryCounter()
	}
	loginRateLimiter := middleware.NewRateLimiterWithCounter(ext.AttemptCounter, cfg.Server.LoginRateLimit, cfg.Server.LoginRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(controllers, loginRateLimiter, authMiddleware, cfg.Server.AllowedOrigins)

	return &Injector{
		Config:           cfg,
		Database:         ext.Database,
		Router:           r,
		EmailWorker:      emailWorker,
		TokenStore:       tokenStore,
		LoginRateLimiter: loginRateLimiter,
	}, nil
}
