package usecases

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/dto"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	apperrors "github.com/nxtrohith/Micro-Task-sub000/internal/shared/errors"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// DashboardWindow is the trailing window covered by the call statistics.
const DashboardWindow = 24 * time.Hour

type GetDashboardSummaryQuery struct {
	Caller authorization.Caller
	Now    time.Time
}

type GetDashboardSummaryUseCase struct {
	issueRepo  issue.Repository
	logRepo    escalation.LogRepository
	authorizer escalation.AdminAuthorizer
	logger     logger.Interface
}

func NewGetDashboardSummaryUseCase(
	issueRepo issue.Repository,
	logRepo escalation.LogRepository,
	authorizer escalation.AdminAuthorizer,
	logger logger.Interface,
) *GetDashboardSummaryUseCase {
	return &GetDashboardSummaryUseCase{
		issueRepo:  issueRepo,
		logRepo:    logRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (uc *GetDashboardSummaryUseCase) Execute(ctx context.Context, query GetDashboardSummaryQuery) (*dto.DashboardSummaryDTO, error) {
	if err := requireAdmin(ctx, uc.authorizer, query.Caller, uc.logger); err != nil {
		return nil, err
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	from := now.Add(-DashboardWindow)

	highUrgency, err := uc.issueRepo.CountHighUrgencyUnviewed(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count high urgency issues", "error", err)
		return nil, apperrors.NewInternalError("failed to build dashboard summary")
	}

	// to is exclusive; include entries logged at exactly now.
	entries, err := uc.logRepo.ListSentBetween(ctx, from, now.Add(time.Millisecond))
	if err != nil {
		uc.logger.Errorw("failed to list recent escalation calls", "error", err)
		return nil, apperrors.NewInternalError("failed to build dashboard summary")
	}

	recent := dto.ToLogEntryDTOs(entries)
	return &dto.DashboardSummaryDTO{
		HighUrgencyUnviewed: highUrgency,
		WindowStart:         from,
		WindowEnd:           now,
		RecentCallCount:     len(recent),
		RecentCalls:         recent,
		CallsPerIssue:       dto.CountCallsPerIssue(entries),
	}, nil
}
