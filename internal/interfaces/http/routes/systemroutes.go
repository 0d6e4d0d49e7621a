package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/system"
)

type SystemRouteConfig struct {
	SystemHandler *system.Handler
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

func SetupSystemRoutes(engine *gin.Engine, config *SystemRouteConfig) {
	engine.GET("/health", config.SystemHandler.HealthCheck)
	engine.GET("/ready", config.SystemHandler.Ready)
	engine.GET("/version", config.SystemHandler.Version)

	if config.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(config.MetricsHandler))
	}
}
