package usecases

import (
	"context"
	"errors"
	"time"

	issuedto "github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

type ResetEscalationCommand struct {
	Caller   authorization.Caller
	IssueSID string
}

// ResetEscalationUseCase clears the escalation pair so the next cycle can call again.
// viewed_by_admin is left as is.
type ResetEscalationUseCase struct {
	issueRepo  issue.Repository
	authorizer escalation.AdminAuthorizer
	logger     logger.Interface
}

func NewResetEscalationUseCase(
	issueRepo issue.Repository,
	authorizer escalation.AdminAuthorizer,
	logger logger.Interface,
) *ResetEscalationUseCase {
	return &ResetEscalationUseCase{
		issueRepo:  issueRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *ResetEscalationUseCase) Execute(ctx context.Context, cmd ResetEscalationCommand) (*issuedto.IssueDTO, error) {
	if err := requireAdmin(ctx, uc.authorizer, cmd.Caller, uc.logger); err != nil {
		return nil, err
	}
	if cmd.IssueSID == "" {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	if err := uc.issueRepo.ResetEscalation(ctx, cmd.IssueSID); err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to reset escalation", "issue_id", cmd.IssueSID, "error", err)
		return nil, apperrors.NewInternalError("failed to reset escalation")
	}

	updated, err := uc.issueRepo.GetBySID(ctx, cmd.IssueSID)
	if err != nil {
		return nil, loadIssueError(uc.logger, cmd.IssueSID, err)
	}

	uc.logger.Infow("escalation reset", "issue_id", cmd.IssueSID, "admin_id", cmd.Caller.UserID)
	return issuedto.ToIssueDTO(updated, time.Now()), nil
}
