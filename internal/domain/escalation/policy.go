// Package escalation holds the escalation decision rules, the call log entry and the
// collaborator contracts used by the scan cycle and the admin controls.
package escalation

import (
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	vo "github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue/valueobjects"
)

const (
	// DefaultDwellTime is the minimum age before an issue is first escalated.
	DefaultDwellTime = 5 * time.Minute

	// AttentionDwellTime is the age after which an unviewed high-urgency issue is flagged on
	// dashboards. It never drives calls.
	AttentionDwellTime = 72 * time.Hour
)

// Policy is the authoritative eligibility rule.
type Policy struct {
	dwellTime time.Duration
}

// NewPolicy returns a policy with the given dwell time. Non-positive values fall back to
// DefaultDwellTime.
func NewPolicy(dwellTime time.Duration) Policy {
	if dwellTime <= 0 {
		dwellTime = DefaultDwellTime
	}
	return Policy{dwellTime: dwellTime}
}

func (p Policy) DwellTime() time.Duration {
	return p.dwellTime
}

// IsEligible reports whether the issue should be called about at now. The issue must be
// reported, never reminded, and at least DwellTime old. The age boundary is inclusive.
//
// viewed_by_admin is not part of the rule. Marking an issue viewed stops further calls only
// because an escalated issue keeps last_reminder_sent; an issue viewed before its first call
// is still called once, and ResetEscalation re-arms a viewed issue.
func (p Policy) IsEligible(i *issue.Issue, now time.Time) bool {
	if i == nil {
		return false
	}
	if !i.Status().IsReported() {
		return false
	}
	if i.LastReminderSent() != nil {
		return false
	}
	return now.Sub(i.CreatedAt()) >= p.dwellTime
}

// CandidateFilter expresses IsEligible as a store query.
func (p Policy) CandidateFilter(now time.Time, limit int) issue.EscalationCandidateFilter {
	return issue.EscalationCandidateFilter{
		Status:            vo.StatusReported,
		CreatedAtOrBefore: now.Add(-p.dwellTime),
		WithoutReminder:   true,
		Limit:             limit,
	}
}

// NeedsAttention is the read-side urgency flag: reported, unviewed, high or critical severity
// and older than AttentionDwellTime.
func NeedsAttention(i *issue.Issue, now time.Time) bool {
	if i == nil {
		return false
	}
	return i.Status().IsReported() &&
		!i.ViewedByAdmin() &&
		i.Severity().IsHighUrgency() &&
		now.Sub(i.CreatedAt()) >= AttentionDwellTime
}
