package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthResponse is the health endpoint payload
type HealthResponse struct {
	Status string            `json:"status" example:"healthy"`
	Time   string            `json:"time" example:"2024-03-15T10:00:00Z"`
	Uptime string            `json:"uptime" example:"1h30m45s"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler reports liveness and the state of the backing stores
type HealthHandler struct {
	BaseHandler
	checks    []HealthCheck
	clock     shared.Clock
	startTime time.Time
	timeout   time.Duration
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(clock shared.Clock, checks ...HealthCheck) *HealthHandler {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &HealthHandler{
		checks:    checks,
		clock:     clock,
		startTime: clock.Now(),
		timeout:   2 * time.Second,
	}
}

// Health godoc
// @Summary      Health check
// @Description  Reports healthy when every dependency answers
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	now := h.clock.Now()
	resp := HealthResponse{
		Status: "healthy",
		Time:   now.Format(time.RFC3339),
		Uptime: now.Sub(h.startTime).Round(time.Second).String(),
		Checks: make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.String("check", check.Name), zap.Error(err))
			resp.Checks[check.Name] = "error"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}
	c.JSON(status, resp)
}
