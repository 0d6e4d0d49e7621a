package usecases

import (
	"context"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/authorization"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

type mockIssueRepository struct {
	CreateFunc       func(ctx context.Context, i *issue.Issue) error
	GetBySIDFunc     func(ctx context.Context, sid string) (*issue.Issue, error)
	ListFunc         func(ctx context.Context, filter issue.ListFilter) ([]*issue.Issue, int64, error)
	UpdateStatusFunc func(ctx context.Context, sid string, from, to vo.IssueStatus, updatedAt time.Time) (bool, error)
}

func (m *mockIssueRepository) Create(ctx context.Context, i *issue.Issue) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, i)
	}
	return nil
}

func (m *mockIssueRepository) GetBySID(ctx context.Context, sid string) (*issue.Issue, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, issue.ErrIssueNotFound
}

func (m *mockIssueRepository) List(ctx context.Context, filter issue.ListFilter) ([]*issue.Issue, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockIssueRepository) UpdateStatus(ctx context.Context, sid string, from, to vo.IssueStatus, updatedAt time.Time) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, sid, from, to, updatedAt)
	}
	return true, nil
}

func (m *mockIssueRepository) FindEscalationCandidates(ctx context.Context, filter issue.EscalationCandidateFilter) ([]*issue.Issue, error) {
	return nil, nil
}

func (m *mockIssueRepository) MarkEscalated(ctx context.Context, sid string, sentAt time.Time) (bool, error) {
	return false, nil
}

func (m *mockIssueRepository) MarkViewed(ctx context.Context, sid string) error {
	return nil
}

func (m *mockIssueRepository) ResetEscalation(ctx context.Context, sid string) error {
	return nil
}

func (m *mockIssueRepository) CountHighUrgencyUnviewed(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockAuthorizer struct{}

func (m *mockAuthorizer) IsAdmin(ctx context.Context, caller authorization.Caller) (bool, error) {
	return caller.Role.IsAdmin(), nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
