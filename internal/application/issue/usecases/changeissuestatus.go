package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

type ChangeIssueStatusCommand struct {
	Caller authorization.Caller
	SID    string
	Status string
}

// ChangeIssueStatusUseCase moves an issue through its workflow. Moving it out of reported
// ends escalation candidacy without touching the escalation fields.
type ChangeIssueStatusUseCase struct {
	issueRepo  issue.Repository
	authorizer escalation.AdminAuthorizer
	logger     logger.Interface
}

func NewChangeIssueStatusUseCase(
	issueRepo issue.Repository,
	authorizer escalation.AdminAuthorizer,
	logger logger.Interface,
) *ChangeIssueStatusUseCase {
	return &ChangeIssueStatusUseCase{
		issueRepo:  issueRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *ChangeIssueStatusUseCase) Execute(ctx context.Context, cmd ChangeIssueStatusCommand) (*dto.IssueDTO, error) {
	if cmd.Caller.IsAnonymous() {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	ok, err := uc.authorizer.IsAdmin(ctx, cmd.Caller)
	if err != nil {
		uc.logger.Errorw("failed to check admin role", "error", err, "user_id", cmd.Caller.UserID)
		return nil, apperrors.NewInternalError("failed to check permissions")
	}
	if !ok {
		return nil, apperrors.NewForbiddenError("admin role required")
	}

	newStatus, err := vo.NewIssueStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	current, err := uc.issueRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to get issue", "error", err, "issue_id", cmd.SID)
		return nil, apperrors.NewInternalError("failed to change issue status")
	}

	from := current.Status()
	now := time.Now().UTC()
	if err := current.ChangeStatus(newStatus, now); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if from == newStatus {
		return dto.ToIssueDTO(current, now), nil
	}

	updated, err := uc.issueRepo.UpdateStatus(ctx, cmd.SID, from, newStatus, now)
	if err != nil {
		uc.logger.Errorw("failed to update issue status", "error", err, "issue_id", cmd.SID)
		return nil, apperrors.NewInternalError("failed to change issue status")
	}
	if !updated {
		return nil, apperrors.NewConflictError("issue status was changed concurrently, reload and retry")
	}

	uc.logger.Infow("issue status changed",
		"issue_id", cmd.SID,
		"from", from,
		"to", newStatus,
		"admin_id", cmd.Caller.UserID)

	return dto.ToIssueDTO(current, now), nil
}
