package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthCheckTimeout bounds the database ping of a health request.
const healthCheckTimeout = 2 * time.Second

// DatabasePinger reports whether the database answers.
type DatabasePinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	db DatabasePinger
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(db DatabasePinger) *HealthController {
	return &HealthController{db: db}
}

// Check handles GET /health requests.
// It answers 503 when the database cannot be reached.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status, dbStatus, code := "ok", "connected", http.StatusOK
	if h.db == nil || h.db.HealthCheck(ctx) != nil {
		status, dbStatus, code = "degraded", "disconnected", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
