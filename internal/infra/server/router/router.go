// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/manjeet0505/Expense/internal/integration/entrypoint/controller"
	"github.com/manjeet0505/Expense/internal/integration/entrypoint/middleware"
)

// Controllers groups every HTTP controller the router mounts.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Budget      *controller.BudgetController
	Stats       *controller.StatsController
	Dashboard   *controller.DashboardController
	Contact     *controller.ContactController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
	allowedOrigins   []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
		allowedOrigins:   allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Logger and recovery.
	r.engine = gin.Default()
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", r.controllers.Health.Check)
	r.setupAPIRoutes()

	return r.engine
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	authenticate := r.authMiddleware.Authenticate()

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", c.Health.Check)
		v1.POST("/contact", c.Contact.Send)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.Auth.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), c.Auth.Login)
			auth.POST("/refresh", c.Auth.RefreshToken)
			auth.POST("/logout", c.Auth.Logout)
			auth.POST("/forgot-password", r.loginRateLimiter.Middleware(), c.Auth.ForgotPassword)
			auth.POST("/reset-password", c.Auth.ResetPassword)
		}

		categories := v1.Group("/categories", authenticate)
		{
			categories.GET("", c.Category.List)
		}

		users := v1.Group("/users", authenticate)
		{
			users.GET("/me", c.User.GetProfile)
			users.PATCH("/me", c.User.UpdateProfile)
			users.POST("/me/password", c.User.ChangePassword)
			users.DELETE("/me", c.User.DeleteAccount)
		}

		transactions := v1.Group("/transactions", authenticate)
		{
			transactions.GET("", c.Transaction.List)
			transactions.GET("/recent", c.Transaction.Recent)
			transactions.POST("", c.Transaction.Create)
			transactions.PUT("/:id", c.Transaction.Update)
			transactions.PATCH("/:id", c.Transaction.Update)
			transactions.DELETE("/:id", c.Transaction.Delete)
		}

		budgets := v1.Group("/budgets", authenticate)
		{
			budgets.GET("", c.Budget.List)
			budgets.PUT("", c.Budget.Upsert)
			budgets.POST("", c.Budget.Upsert)
			budgets.DELETE("/:id", c.Budget.Delete)
		}

		v1.GET("/stats", authenticate, c.Stats.GetMonthly)

		dashboard := v1.Group("/dashboard", authenticate)
		{
			dashboard.GET("/trends", c.Dashboard.GetTrends)
			dashboard.GET("/category-breakdown", c.Dashboard.GetCategoryBreakdown)
		}
	}
}

// Engine returns the configured engine. Setup must have been called.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
