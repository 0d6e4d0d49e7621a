package usecases

import (
	"context"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

type GetEscalationHistoryQuery struct {
	Caller   authorization.Caller
	IssueSID string
}

type GetEscalationHistoryUseCase struct {
	issueRepo  issue.Repository
	logRepo    escalation.LogRepository
	authorizer escalation.AdminAuthorizer
	logger     logger.Interface
}

func NewGetEscalationHistoryUseCase(
	issueRepo issue.Repository,
	logRepo escalation.LogRepository,
	authorizer escalation.AdminAuthorizer,
	logger logger.Interface,
) *GetEscalationHistoryUseCase {
	return &GetEscalationHistoryUseCase{
		issueRepo:  issueRepo,
		logRepo:    logRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Execute returns every call logged for the issue, newest first.
func (uc *GetEscalationHistoryUseCase) Execute(ctx context.Context, query GetEscalationHistoryQuery) ([]*dto.LogEntryDTO, error) {
	if err := requireAdmin(ctx, uc.authorizer, query.Caller, uc.logger); err != nil {
		return nil, err
	}
	if query.IssueSID == "" {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	if _, err := uc.issueRepo.GetBySID(ctx, query.IssueSID); err != nil {
		return nil, loadIssueError(uc.logger, query.IssueSID, err)
	}

	entries, err := uc.logRepo.ListByIssue(ctx, query.IssueSID)
	if err != nil {
		uc.logger.Errorw("failed to list escalation history", "issue_id", query.IssueSID, "error", err)
		return nil, apperrors.NewInternalError("failed to list escalation history")
	}

	return dto.ToLogEntryDTOs(entries), nil
}
