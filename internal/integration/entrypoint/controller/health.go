// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil redis checker reports redis as disabled.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	redisStatus := "disabled"
	if h.redisHealthChecker != nil {
		redisStatus = "disconnected"
		if h.redisHealthChecker() {
			redisStatus = "connected"
		}
	}

	status := "ok"
	statusCode := http.StatusOK
	if dbStatus != "connected" {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Redis:     redisStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
