package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	issuehandlers "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/middleware"
)

type IssueRouteConfig struct {
	IssueHandler   *issuehandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
	Authorizer     escalation.AdminAuthorizer
}

func SetupIssueRoutes(engine *gin.Engine, config *IssueRouteConfig) {
	issues := engine.Group("/issues")
	{
		issues.POST("", config.AuthMiddleware.RequireAuth(), config.IssueHandler.CreateIssue)
		issues.GET("", config.AuthMiddleware.OptionalAuth(), config.IssueHandler.ListIssues)
		issues.GET("/:sid", config.AuthMiddleware.OptionalAuth(), config.IssueHandler.GetIssue)
	}

	adminIssues := engine.Group("/admin/issues")
	adminIssues.Use(config.AuthMiddleware.RequireAuth(), config.AuthMiddleware.RequireAdmin(config.Authorizer))
	{
		adminIssues.PATCH("/:sid/status", config.IssueHandler.ChangeStatus)
	}
}
