package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the ledger store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StatusHandler serves the operational endpoints.
type StatusHandler struct {
	store HealthChecker
}

func NewStatusHandler(store HealthChecker) *StatusHandler {
	return &StatusHandler{store: store}
}

// Ping handles GET /ping.
func (h *StatusHandler) Ping(c *gin.Context) {
	if err := h.store.HealthCheck(c.Request.Context()); err != nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusOK)
}
