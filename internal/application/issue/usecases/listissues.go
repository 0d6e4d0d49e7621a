package usecases

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	sharedquery "github.com/nxtrohith/Micro-Task-sub000/internal/shared/query"
)

type ListIssuesQuery struct {
	Status     string
	Severity   string
	ReporterID string
	Page       int
	PageSize   int
}

type ListIssuesResult struct {
	Issues []*dto.IssueDTO
	Total  int64
	Page   int
	Size   int
}

type ListIssuesUseCase struct {
	issueRepo issue.Repository
	logger    logger.Interface
}

func NewListIssuesUseCase(issueRepo issue.Repository, logger logger.Interface) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		issueRepo: issueRepo,
		logger:    logger,
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error) {
	filter := issue.ListFilter{
		PageFilter: sharedquery.NewPageFilter(query.Page, query.PageSize),
		ReporterID: query.ReporterID,
	}

	if query.Status != "" {
		status, err := vo.NewIssueStatus(query.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Severity != "" {
		severity, err := vo.NewSeverity(query.Severity)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Severity = &severity
	}

	issues, total, err := uc.issueRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "error", err)
		return nil, apperrors.NewInternalError("failed to list issues")
	}

	return &ListIssuesResult{
		Issues: dto.ToIssueDTOs(issues, time.Now()),
		Total:  total,
		Page:   filter.Page,
		Size:   filter.PageSize,
	}, nil
}
