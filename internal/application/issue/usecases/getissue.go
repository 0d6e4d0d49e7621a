package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/services/markdown"
)

type GetIssueQuery struct {
	SID string
}

type GetIssueUseCase struct {
	issueRepo issue.Repository
	text      markdown.Service
	logger    logger.Interface
}

func NewGetIssueUseCase(issueRepo issue.Repository, text markdown.Service, logger logger.Interface) *GetIssueUseCase {
	return &GetIssueUseCase{
		issueRepo: issueRepo,
		text:      text,
		logger:    logger,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error) {
	if query.SID == "" {
		return nil, apperrors.NewValidationError("issue ID is required")
	}

	found, err := uc.issueRepo.GetBySID(ctx, query.SID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found")
		}
		uc.logger.Errorw("failed to get issue", "error", err, "issue_id", query.SID)
		return nil, apperrors.NewInternalError("failed to get issue")
	}

	result := dto.ToIssueDTO(found, time.Now())
	rendered, err := uc.text.RenderDescription(found.Description())
	if err != nil {
		uc.logger.Warnw("failed to render issue description", "error", err, "issue_id", query.SID)
	} else {
		result.DescriptionHTML = rendered
	}
	return result, nil
}
