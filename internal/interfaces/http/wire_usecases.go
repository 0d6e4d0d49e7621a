package http

import (
	escalationUsecases "github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/usecases"
	issueUsecases "github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Issue
	createIssueUC       *issueUsecases.CreateIssueUseCase
	getIssueUC          *issueUsecases.GetIssueUseCase
	listIssuesUC        *issueUsecases.ListIssuesUseCase
	changeIssueStatusUC *issueUsecases.ChangeIssueStatusUseCase

	// Escalation
	processEscalationsUC   *escalationUsecases.ProcessEscalationsUseCase
	markViewedUC           *escalationUsecases.MarkViewedUseCase
	resetEscalationUC      *escalationUsecases.ResetEscalationUseCase
	getEscalationHistoryUC *escalationUsecases.GetEscalationHistoryUseCase
	getDashboardSummaryUC  *escalationUsecases.GetDashboardSummaryUseCase
}
