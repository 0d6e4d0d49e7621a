// Package issue serves the minimal issue surface that feeds the escalation scheduler.
package issue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/usecases"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/middleware"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/id"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/utils"
)

type Handler struct {
	createIssueUC  usecases.CreateIssueExecutor
	getIssueUC     usecases.GetIssueExecutor
	listIssuesUC   usecases.ListIssuesExecutor
	changeStatusUC usecases.ChangeIssueStatusExecutor
	logger         logger.Interface
}

func NewHandler(
	createIssueUC usecases.CreateIssueExecutor,
	getIssueUC usecases.GetIssueExecutor,
	listIssuesUC usecases.ListIssuesExecutor,
	changeStatusUC usecases.ChangeIssueStatusExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createIssueUC:  createIssueUC,
		getIssueUC:     getIssueUC,
		listIssuesUC:   listIssuesUC,
		changeStatusUC: changeStatusUC,
		logger:         logger,
	}
}

// CreateIssue handles POST /issues
func (h *Handler) CreateIssue(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	if caller.IsAnonymous() {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create issue", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createIssueUC.Execute(c.Request.Context(), req.ToCommand(caller.UserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Issue reported successfully")
}

// GetIssue handles GET /issues/:sid
func (h *Handler) GetIssue(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixIssue, "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getIssueUC.Execute(c.Request.Context(), usecases.GetIssueQuery{SID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListIssues handles GET /issues
func (h *Handler) ListIssues(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listIssuesUC.Execute(c.Request.Context(), usecases.ListIssuesQuery{
		Status:     c.Query("status"),
		Severity:   c.Query("severity"),
		ReporterID: c.Query("reporter_id"),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Issues, result.Total, result.Page, result.Size)
}

// ChangeStatus handles PATCH /admin/issues/:sid/status
func (h *Handler) ChangeStatus(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixIssue, "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeIssueStatusCommand{
		Caller: middleware.CallerFromContext(c),
		SID:    sid,
		Status: req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue status updated", result)
}
