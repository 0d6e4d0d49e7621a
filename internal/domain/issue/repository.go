package issue

import (
	"context"
	"errors"
	"time"

	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/query"
)

// ErrIssueNotFound is returned by repository lookups for an unknown SID.
var ErrIssueNotFound = errors.New("issue not found")

// Repository is the issue store. Escalation writes are single conditional statements so the
// scheduler and the admin controls can run concurrently without a lock.
type Repository interface {
	Create(ctx context.Context, issue *Issue) error
	GetBySID(ctx context.Context, sid string) (*Issue, error)
	List(ctx context.Context, filter ListFilter) ([]*Issue, int64, error)
	UpdateStatus(ctx context.Context, sid string, from, to vo.IssueStatus, updatedAt time.Time) (bool, error)

	// FindEscalationCandidates evaluates the filter inside the store.
	FindEscalationCandidates(ctx context.Context, filter EscalationCandidateFilter) ([]*Issue, error)
	// MarkEscalated sets escalation_active and last_reminder_sent only while the issue is
	// reported and last_reminder_sent is still absent. It reports whether a row was updated.
	MarkEscalated(ctx context.Context, sid string, sentAt time.Time) (bool, error)
	// MarkViewed sets viewed_by_admin. Calling it on an already viewed issue is a no-op.
	MarkViewed(ctx context.Context, sid string) error
	// ResetEscalation clears escalation_active and last_reminder_sent, leaving viewed_by_admin.
	ResetEscalation(ctx context.Context, sid string) error
	CountHighUrgencyUnviewed(ctx context.Context) (int64, error)
}

// EscalationCandidateFilter is the store-side form of the eligibility predicate.
type EscalationCandidateFilter struct {
	Status vo.IssueStatus
	// CreatedAtOrBefore is inclusive: an issue created exactly at this instant matches.
	CreatedAtOrBefore time.Time
	WithoutReminder   bool
	Limit             int
}

type ListFilter struct {
	query.PageFilter
	Status     *vo.IssueStatus
	Severity   *vo.Severity
	ReporterID string
}
