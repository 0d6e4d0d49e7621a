package valueobjects

import "fmt"

type IssueStatus string

const (
	StatusReported   IssueStatus = "reported"
	StatusApproved   IssueStatus = "approved"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
)

var validIssueStatuses = map[IssueStatus]bool{
	StatusReported:   true,
	StatusApproved:   true,
	StatusInProgress: true,
	StatusResolved:   true,
}

var issueStatusTransitions = map[IssueStatus][]IssueStatus{
	StatusReported: {
		StatusApproved,
		StatusInProgress,
		StatusResolved,
	},
	StatusApproved: {
		StatusInProgress,
		StatusResolved,
	},
	StatusInProgress: {
		StatusResolved,
	},
	StatusResolved: {},
}

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	return validIssueStatuses[s]
}

func (s IssueStatus) IsReported() bool {
	return s == StatusReported
}

func (s IssueStatus) CanTransitionTo(newStatus IssueStatus) bool {
	for _, allowed := range issueStatusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func NewIssueStatus(s string) (IssueStatus, error) {
	status := IssueStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return status, nil
}
