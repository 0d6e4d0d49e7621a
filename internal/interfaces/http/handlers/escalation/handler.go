// Package escalation serves the admin escalation control endpoints.
package escalation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/usecases"
	domainescalation "github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/scheduler"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/middleware"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/biztime"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/id"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/utils"
)

// CycleRunner triggers one scan cycle outside the schedule.
type CycleRunner interface {
	RunEscalationNow(ctx context.Context) (*usecases.ProcessEscalationsResult, error)
}

type Handler struct {
	markViewedUC usecases.MarkViewedExecutor
	resetUC      usecases.ResetEscalationExecutor
	historyUC    usecases.GetEscalationHistoryExecutor
	dashboardUC  usecases.GetDashboardSummaryExecutor
	runner       CycleRunner
	authorizer   domainescalation.AdminAuthorizer
	logger       logger.Interface
}

func NewHandler(
	markViewedUC usecases.MarkViewedExecutor,
	resetUC usecases.ResetEscalationExecutor,
	historyUC usecases.GetEscalationHistoryExecutor,
	dashboardUC usecases.GetDashboardSummaryExecutor,
	runner CycleRunner,
	authorizer domainescalation.AdminAuthorizer,
	logger logger.Interface,
) *Handler {
	return &Handler{
		markViewedUC: markViewedUC,
		resetUC:      resetUC,
		historyUC:    historyUC,
		dashboardUC:  dashboardUC,
		runner:       runner,
		authorizer:   authorizer,
		logger:       logger,
	}
}

// MarkViewed handles POST /admin/escalations/issues/:sid/viewed
func (h *Handler) MarkViewed(c *gin.Context) {
	sid, err := parseIssueSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markViewedUC.Execute(c.Request.Context(), usecases.MarkViewedCommand{
		Caller:   middleware.CallerFromContext(c),
		IssueSID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue marked as viewed", result)
}

// Reset handles POST /admin/escalations/issues/:sid/reset
func (h *Handler) Reset(c *gin.Context) {
	sid, err := parseIssueSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resetUC.Execute(c.Request.Context(), usecases.ResetEscalationCommand{
		Caller:   middleware.CallerFromContext(c),
		IssueSID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Escalation reset", result)
}

// History handles GET /admin/escalations/issues/:sid/history
func (h *Handler) History(c *gin.Context) {
	sid, err := parseIssueSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.GetEscalationHistoryQuery{
		Caller:   middleware.CallerFromContext(c),
		IssueSID: sid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Dashboard handles GET /admin/escalations/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUC.Execute(c.Request.Context(), usecases.GetDashboardSummaryQuery{
		Caller: middleware.CallerFromContext(c),
		Now:    biztime.NowUTC(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RunNow handles POST /admin/escalations/run
func (h *Handler) RunNow(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	if caller.IsAnonymous() {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	allowed, err := h.authorizer.IsAdmin(c.Request.Context(), caller)
	if err != nil {
		h.logger.Errorw("admin check failed", "user_id", caller.UserID, "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewInternalError("failed to check permissions"))
		return
	}
	if !allowed {
		utils.ErrorResponseWithError(c, apperrors.NewForbiddenError("admin access required"))
		return
	}

	result, err := h.runner.RunEscalationNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, scheduler.ErrCycleInProgress) {
			utils.ErrorResponseWithError(c, apperrors.NewConflictError("an escalation cycle is already running"))
			return
		}
		h.logger.Errorw("manual escalation cycle failed", "user_id", caller.UserID, "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewInternalError("escalation cycle failed"))
		return
	}

	h.logger.Infow("manual escalation cycle completed",
		"user_id", caller.UserID,
		"candidates", result.Candidates,
		"sent", result.Sent,
	)
	utils.SuccessResponse(c, http.StatusOK, "Escalation cycle completed", result)
}

func parseIssueSID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "sid", id.PrefixIssue, "issue")
}
