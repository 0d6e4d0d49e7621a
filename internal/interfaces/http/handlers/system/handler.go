// Package system serves liveness, readiness and version endpoints.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/version"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SchedulerState reports whether the escalation scheduler is running.
type SchedulerState interface {
	IsStarted() bool
}

type Handler struct {
	db        Pinger
	scheduler SchedulerState
	logger    logger.Interface
}

func NewHandler(db Pinger, scheduler SchedulerState, logger logger.Interface) *Handler {
	return &Handler{
		db:        db,
		scheduler: scheduler,
		logger:    logger,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "civicpulse",
	})
}

// Ready handles GET /ready. It fails when the database is unreachable.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warnw("readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"database": "down",
		})
		return
	}

	schedulerRunning := false
	if h.scheduler != nil {
		schedulerRunning = h.scheduler.IsStarted()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"database":  "up",
		"scheduler": schedulerRunning,
	})
}

// Version handles GET /version
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.String(),
	})
}
