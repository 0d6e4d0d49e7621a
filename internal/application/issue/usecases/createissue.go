package usecases

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/id"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/services/markdown"
)

type CreateIssueCommand struct {
	ReporterID  string
	Title       string
	Description string
	Category    string
	Severity    string
	Address     string
	Latitude    float64
	Longitude   float64
	ImageURLs   []string
}

type CreateIssueUseCase struct {
	issueRepo issue.Repository
	text      markdown.Service
	logger    logger.Interface
}

func NewCreateIssueUseCase(
	issueRepo issue.Repository,
	text markdown.Service,
	logger logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issueRepo: issueRepo,
		text:      text,
		logger:    logger,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error) {
	if cmd.ReporterID == "" {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	severity := vo.SeverityMedium
	if cmd.Severity != "" {
		s, err := vo.NewSeverity(cmd.Severity)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		severity = s
	}

	sid, err := id.NewIssueSID()
	if err != nil {
		uc.logger.Errorw("failed to generate issue ID", "error", err)
		return nil, apperrors.NewInternalError("failed to create issue")
	}

	now := time.Now().UTC()
	newIssue, err := issue.NewIssue(
		sid,
		uc.text.StripTags(cmd.Title),
		uc.text.CleanDescription(cmd.Description),
		uc.text.StripTags(cmd.Category),
		severity,
		issue.Location{
			Address:   uc.text.StripTags(cmd.Address),
			Latitude:  cmd.Latitude,
			Longitude: cmd.Longitude,
		},
		cmd.ImageURLs,
		cmd.ReporterID,
		now,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.issueRepo.Create(ctx, newIssue); err != nil {
		uc.logger.Errorw("failed to persist issue", "error", err, "issue_id", sid)
		return nil, apperrors.NewInternalError("failed to create issue")
	}

	uc.logger.Infow("issue reported",
		"issue_id", sid,
		"severity", severity,
		"reporter_id", cmd.ReporterID)

	return dto.ToIssueDTO(newIssue, now), nil
}
