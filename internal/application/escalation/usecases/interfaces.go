package usecases

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/dto"
	issuedto "github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
)

type ProcessEscalationsExecutor interface {
	Execute(ctx context.Context, now time.Time) (*ProcessEscalationsResult, error)
}

type MarkViewedExecutor interface {
	Execute(ctx context.Context, cmd MarkViewedCommand) (*issuedto.IssueDTO, error)
}

type ResetEscalationExecutor interface {
	Execute(ctx context.Context, cmd ResetEscalationCommand) (*issuedto.IssueDTO, error)
}

type GetEscalationHistoryExecutor interface {
	Execute(ctx context.Context, query GetEscalationHistoryQuery) ([]*dto.LogEntryDTO, error)
}

type GetDashboardSummaryExecutor interface {
	Execute(ctx context.Context, query GetDashboardSummaryQuery) (*dto.DashboardSummaryDTO, error)
}

// Transactor runs fn in one transaction; repository calls made with the derived context
// join it.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTransaction struct{}

func (noTransaction) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Metrics receives scan cycle and call outcomes.
type Metrics interface {
	RecordCall(outcome string)
	RecordCycle(duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordCall(string)                {}
func (noopMetrics) RecordCycle(time.Duration, error) {}
