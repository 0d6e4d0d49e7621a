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

type MarkViewedCommand struct {
	Caller   authorization.Caller
	IssueSID string
}

// MarkViewedUseCase records that an admin has seen the issue. Repeating it changes nothing.
type MarkViewedUseCase struct {
	issueRepo  issue.Repository
	authorizer escalation.AdminAuthorizer
	logger     logger.Interface
}

func NewMarkViewedUseCase(
	issueRepo issue.Repository,
	authorizer escalation.AdminAuthorizer,
	logger logger.Interface,
) *MarkViewedUseCase {
	return &MarkViewedUseCase{
		issueRepo:  issueRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *MarkViewedUseCase) Execute(ctx context.Context, cmd MarkViewedCommand) (*issuedto.IssueDTO, error) {
	if err := requireAdmin(ctx, uc.authorizer, cmd.Caller, uc.logger); err != nil {
		return nil, err
	}
	if cmd.IssueSID == "" {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	if err := uc.issueRepo.MarkViewed(ctx, cmd.IssueSID); err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to mark issue viewed", "issue_id", cmd.IssueSID, "error", err)
		return nil, apperrors.NewInternalError("failed to mark issue viewed")
	}

	updated, err := uc.issueRepo.GetBySID(ctx, cmd.IssueSID)
	if err != nil {
		return nil, loadIssueError(uc.logger, cmd.IssueSID, err)
	}

	uc.logger.Infow("issue marked viewed", "issue_id", cmd.IssueSID, "admin_id", cmd.Caller.UserID)
	return issuedto.ToIssueDTO(updated, time.Now()), nil
}

func loadIssueError(log logger.Interface, sid string, err error) error {
	if errors.Is(err, issue.ErrIssueNotFound) {
		return apperrors.NewNotFoundError("issue not found")
	}
	log.Errorw("failed to load issue", "issue_id", sid, "error", err)
	return apperrors.NewInternalError("failed to load issue")
}
