package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	escalationhandlers "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/middleware"
)

type EscalationRouteConfig struct {
	EscalationHandler *escalationhandlers.Handler
	AuthMiddleware    *middleware.AuthMiddleware
	Authorizer        escalation.AdminAuthorizer
}

func SetupEscalationRoutes(engine *gin.Engine, config *EscalationRouteConfig) {
	escalations := engine.Group("/admin/escalations")
	escalations.Use(config.AuthMiddleware.RequireAuth(), config.AuthMiddleware.RequireAdmin(config.Authorizer))
	{
		escalations.GET("/dashboard", config.EscalationHandler.Dashboard)
		escalations.POST("/run", config.EscalationHandler.RunNow)

		escalations.POST("/issues/:sid/viewed", config.EscalationHandler.MarkViewed)
		escalations.POST("/issues/:sid/reset", config.EscalationHandler.Reset)
		escalations.GET("/issues/:sid/history", config.EscalationHandler.History)
	}
}
