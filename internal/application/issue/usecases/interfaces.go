package usecases

import (
	"context"

	"github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/dto"
)

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*dto.IssueDTO, error)
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error)
}

type ChangeIssueStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeIssueStatusCommand) (*dto.IssueDTO, error)
}
