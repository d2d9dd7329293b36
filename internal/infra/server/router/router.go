// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/recurring/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	recurringController *controller.RecurringController
	reminderController  *controller.ReminderController
	triggerRateLimiter  *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	recurringController *controller.RecurringController,
	reminderController *controller.ReminderController,
	triggerRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		recurringController: recurringController,
		reminderController:  reminderController,
		triggerRateLimiter:  triggerRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.authMiddleware == nil {
		return
	}
	v1.Use(r.authMiddleware.Authenticate())

	trigger := func(c *gin.Context) { c.Next() }
	if r.triggerRateLimiter != nil {
		trigger = r.triggerRateLimiter.Middleware()
	}

	// Recurring schedule routes (require authentication)
	if r.recurringController != nil {
		rec := v1.Group("/recurring")
		{
			rec.GET("", r.recurringController.List)
			rec.POST("", r.recurringController.Create)
			rec.GET("/upcoming", r.recurringController.Upcoming)
			rec.POST("/process", trigger, r.recurringController.Process)
			rec.GET("/:id", r.recurringController.Get)
			rec.PATCH("/:id", r.recurringController.Update)
			rec.DELETE("/:id", r.recurringController.Delete)
			rec.POST("/:id/activate", r.recurringController.Activate)
			rec.POST("/:id/deactivate", r.recurringController.Deactivate)
			rec.GET("/:id/transactions", r.recurringController.Transactions)
		}
	}

	// Reminder routes (require authentication)
	if r.reminderController != nil {
		reminders := v1.Group("/reminders")
		{
			reminders.GET("/config", r.reminderController.GetConfig)
			reminders.PUT("/config", r.reminderController.UpdateConfig)
			reminders.POST("/check", trigger, r.reminderController.Check)
			reminders.GET("/deliveries", r.reminderController.Deliveries)
		}
	}
}
